package upload

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Credentials selects how the S3 client authenticates. Key/Secret win over
// File; with neither set the default AWS credential chain is used.
type Credentials struct {
	Key    string
	Secret string
	File   string // AWS console .csv export or a shared credentials file
}

// readCSVCredentials parses the credentials file the AWS console offers for
// download. It has a header row naming "Access key ID" and "Secret access key"
// columns (older exports also carry user name and password columns).
func readCSVCredentials(path string) (key, secret string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to open credentials %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return "", "", fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}
	if len(records) < 2 {
		return "", "", fmt.Errorf("credentials %s: want a header row and a key row", path)
	}

	keyCol, secretCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "access key id":
			keyCol = i
		case "secret access key":
			secretCol = i
		}
	}
	if keyCol < 0 || secretCol < 0 {
		return "", "", fmt.Errorf("credentials %s: missing \"Access key ID\" or \"Secret access key\" column", path)
	}

	row := records[1]
	if keyCol >= len(row) || secretCol >= len(row) {
		return "", "", fmt.Errorf("credentials %s: short key row", path)
	}
	return strings.TrimSpace(row[keyCol]), strings.TrimSpace(row[secretCol]), nil
}
