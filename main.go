package main

import (
	"xchelper/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// xchelper is a build helper for Swift packages developed in Xcode. It is meant to be
// called from Xcode build phases and schemes, which pass PROJECT_DIR, PROJECT and the
// DOCKER_* variables in the environment. It:
//   - Updates package dependencies on macOS or inside a Docker container
//   - Builds Linux binaries in Docker, keeping a persistent .build volume per image
//   - Replaces versioned dependency checkouts with stable symlinks and patches the Xcode project
//   - Creates tar.gz archives and .xcarchive bundles, and uploads archives to S3
//   - Reads, increments and pushes major.minor.patch git tags
//
// Error handling strategy:
//   - Every step runs an external program; the first failure stops the command
//   - The failure is printed in red and the process exits with status 1,
//     which makes the Xcode build phase fail
func main() {
	cmd.Execute()
}
