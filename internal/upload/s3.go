// Package upload sends build archives to S3.
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Request describes one archive upload.
type Request struct {
	Archive     string // local file
	Bucket      string
	Region      string
	Key         string // object key; defaults to the archive's file name
	Credentials Credentials
}

func (r Request) objectKey() string {
	if r.Key != "" {
		return r.Key
	}
	return filepath.Base(r.Archive)
}

// Result identifies the uploaded object.
type Result struct {
	Location string // s3://bucket/key
	ETag     string
}

// Uploader uploads a local archive.
type Uploader interface {
	Upload(ctx context.Context, req Request) (Result, error)
}

// Error is returned for every failed upload. StatusCode and Details are only
// set when S3 answered; Details carries the service error code and message,
// the closest thing the SDK exposes to the response body.
type Error struct {
	StatusCode int
	Details    string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "HTTP %d", e.StatusCode)
	} else {
		b.WriteString("upload failed")
	}
	if e.Details != "" {
		b.WriteString("\n" + e.Details)
	} else if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// PutObjectAPI is the part of *s3.Client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ClientFactory builds an S3 client for a request's region and credentials.
type ClientFactory func(ctx context.Context, req Request) (PutObjectAPI, error)

// S3Uploader uploads with the AWS SDK.
type S3Uploader struct {
	NewClient ClientFactory // defaults to NewS3Client
}

// Upload puts the archive into the bucket. Anything but a successful
// PutObject is returned as *Error.
func (u S3Uploader) Upload(ctx context.Context, req Request) (Result, error) {
	if req.Bucket == "" {
		return Result{}, &Error{Err: errors.New("bucket is required")}
	}
	if req.Region == "" {
		return Result{}, &Error{Err: errors.New("region is required")}
	}

	f, err := os.Open(req.Archive)
	if err != nil {
		return Result{}, &Error{Err: fmt.Errorf("failed to open archive: %w", err)}
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return Result{}, &Error{Err: fmt.Errorf("failed to stat archive: %w", err)}
	}

	newClient := u.NewClient
	if newClient == nil {
		newClient = NewS3Client
	}
	client, err := newClient(ctx, req)
	if err != nil {
		return Result{}, &Error{Err: err}
	}

	key := req.objectKey()
	out, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(req.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType(key)),
	})
	if err != nil {
		return Result{}, asUploadError(err)
	}

	res := Result{Location: fmt.Sprintf("s3://%s/%s", req.Bucket, key)}
	if out != nil && out.ETag != nil {
		res.ETag = strings.Trim(*out.ETag, `"`)
	}
	return res, nil
}

func asUploadError(err error) error {
	ue := &Error{Err: err}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		ue.StatusCode = respErr.HTTPStatusCode()
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		ue.Details = fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return ue
}

func contentType(key string) string {
	switch {
	case strings.HasSuffix(key, ".zip"):
		return "application/zip"
	case strings.HasSuffix(key, ".tar.gz"), strings.HasSuffix(key, ".tgz"), strings.HasSuffix(key, ".tar"):
		return "application/gzip" // xchelper always writes gzip compressed tarballs
	}
	return "application/octet-stream"
}

// NewS3Client loads an AWS configuration for the request and returns an S3 client.
func NewS3Client(ctx context.Context, req Request) (PutObjectAPI, error) {
	cfg, err := LoadAWSConfig(ctx, req.Region, req.Credentials)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

// LoadAWSConfig resolves credentials in this order: static key/secret, an AWS
// console .csv file, a shared credentials file, then the SDK default chain.
func LoadAWSConfig(ctx context.Context, region string, creds Credentials) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}

	switch {
	case creds.Key != "" || creds.Secret != "":
		if creds.Key == "" || creds.Secret == "" {
			return aws.Config{}, fmt.Errorf("both key and secret are required")
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.Key, creds.Secret, "")))
	case strings.HasSuffix(strings.ToLower(creds.File), ".csv"):
		key, secret, err := readCSVCredentials(expandHome(creds.File))
		if err != nil {
			return aws.Config{}, err
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, "")))
	case creds.File != "":
		opts = append(opts, config.WithSharedCredentialsFiles([]string{expandHome(creds.File)}))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
