package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func factory(client PutObjectAPI) ClientFactory {
	return func(context.Context, Request) (PutObjectAPI, error) { return client, nil }
}

func writeArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Hello.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("archive-bytes"), 0644))
	return path
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	archive := writeArchive(t)

	res, err := S3Uploader{NewClient: factory(client)}.Upload(context.Background(), Request{
		Archive: archive,
		Bucket:  "saltzman.test",
		Region:  "us-east-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "s3://saltzman.test/Hello.tar.gz", res.Location)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "saltzman.test", aws.ToString(client.input.Bucket))
	assert.Equal(t, "Hello.tar.gz", aws.ToString(client.input.Key))
	assert.Equal(t, int64(len("archive-bytes")), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "application/gzip", aws.ToString(client.input.ContentType))
	assert.Equal(t, "archive-bytes", string(client.body))
}

func TestUploadCustomKey(t *testing.T) {
	client := &fakeS3{}
	_, err := S3Uploader{NewClient: factory(client)}.Upload(context.Background(), Request{
		Archive: writeArchive(t), Bucket: "b", Region: "us-west-2", Key: "releases/1.0.0/Hello.tar.gz",
	})
	require.NoError(t, err)
	assert.Equal(t, "releases/1.0.0/Hello.tar.gz", aws.ToString(client.input.Key))
}

func TestUploadValidation(t *testing.T) {
	client := &fakeS3{}
	u := S3Uploader{NewClient: factory(client)}
	tests := []struct {
		req  Request
		want string
	}{
		{req: Request{Archive: writeArchive(t), Region: "us-east-1"}, want: "upload failed: bucket is required"},
		{req: Request{Archive: writeArchive(t), Bucket: "b"}, want: "upload failed: region is required"},
		{req: Request{Archive: "/does/not/exist", Bucket: "b", Region: "r"}, want: "upload failed: failed to open archive: "},
	}
	for _, tt := range tests {
		_, err := u.Upload(context.Background(), tt.req)
		var ue *Error
		require.True(t, errors.As(err, &ue), tt.want)
		assert.Zero(t, ue.StatusCode)
		assert.Contains(t, err.Error(), tt.want)
	}
	_, err := u.Upload(context.Background(), Request{Archive: "/does/not/exist", Bucket: "b", Region: "r"})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, client.input)
}

func TestUploadClientFailure(t *testing.T) {
	u := S3Uploader{NewClient: func(context.Context, Request) (PutObjectAPI, error) {
		return nil, errors.New("both key and secret are required")
	}}

	_, err := u.Upload(context.Background(), Request{Archive: writeArchive(t), Bucket: "b", Region: "r"})
	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "upload failed: both key and secret are required", err.Error())
}

func TestUploadRejectedByService(t *testing.T) {
	denied := &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusForbidden}},
			Err:      &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"},
		},
	}
	client := &fakeS3{err: denied}

	_, err := S3Uploader{NewClient: factory(client)}.Upload(context.Background(), Request{
		Archive: writeArchive(t), Bucket: "b", Region: "us-east-1",
	})

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusForbidden, ue.StatusCode)
	assert.Equal(t, "HTTP 403\nAccessDenied: Access Denied", ue.Error())
}

func TestUploadTransportFailure(t *testing.T) {
	client := &fakeS3{err: errors.New("dial tcp: no route to host")}

	_, err := S3Uploader{NewClient: factory(client)}.Upload(context.Background(), Request{
		Archive: writeArchive(t), Bucket: "b", Region: "us-east-1",
	})

	require.Error(t, err)
	assert.Equal(t, "upload failed: dial tcp: no route to host", err.Error())
}

func TestReadCSVCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s3Credentials.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"User name,Password,Access key ID,Secret access key,Console login link\n"+
			"ci,,AKIAEXAMPLE,wJalrXUtnFEMI,https://console\n"), 0600))

	key, secret, err := readCSVCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", key)
	assert.Equal(t, "wJalrXUtnFEMI", secret)
}

func TestReadCSVCredentialsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0600))

	_, _, err := readCSVCredentials(path)
	assert.Error(t, err)
}

func TestLoadAWSConfigStaticCredentials(t *testing.T) {
	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx, "us-east-1", Credentials{Key: "AKID", Secret: "SECRET"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "SECRET", creds.SecretAccessKey)
}

func TestLoadAWSConfigCSVCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.csv")
	require.NoError(t, os.WriteFile(path, []byte("Access key ID,Secret access key\nAKCSV,SECRETCSV\n"), 0600))

	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx, "eu-west-1", Credentials{File: path})
	require.NoError(t, err)

	creds, err := cfg.Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AKCSV", creds.AccessKeyID)
}

func TestLoadAWSConfigRequiresBothHalves(t *testing.T) {
	_, err := LoadAWSConfig(context.Background(), "us-east-1", Credentials{Key: "AKID"})
	assert.Error(t, err)
}
