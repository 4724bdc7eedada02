package export

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSink is a mock implementation of the Sink interface for testing.
type mockSink struct {
	putFunc func(ctx context.Context, key string, body []byte) (string, error)
}

func (m *mockSink) Put(ctx context.Context, key string, body []byte) (string, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, key, body)
	}
	return "", errors.New("not implemented")
}

// mockS3Client records PutObject calls.
type mockS3Client struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = params
	if params.Body != nil {
		m.body, _ = io.ReadAll(params.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Put(t *testing.T) {
	client := &mockS3Client{}
	sink := &s3Sink{client: client, bucket: "inventory", logger: zerolog.Nop()}

	location, err := sink.Put(context.Background(), "snapshots/a.csv.gz", []byte("payload"))
	require.NoError(t, err)

	assert.Equal(t, "s3://inventory/snapshots/a.csv.gz", location)
	require.NotNil(t, client.input)
	assert.Equal(t, "inventory", aws.ToString(client.input.Bucket))
	assert.Equal(t, "snapshots/a.csv.gz", aws.ToString(client.input.Key))
	assert.Equal(t, "gzip", aws.ToString(client.input.ContentEncoding))
	assert.Equal(t, "payload", string(client.body))
}

func TestS3Sink_PutError(t *testing.T) {
	client := &mockS3Client{err: errors.New("access denied")}
	sink := &s3Sink{client: client, bucket: "inventory", logger: zerolog.Nop()}

	_, err := sink.Put(context.Background(), "a.csv.gz", []byte("payload"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=inventory")
	assert.Contains(t, err.Error(), "access denied")
}

func TestFallbackSink_S3Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	remote := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			assert.Equal(t, "snapshots/test.csv.gz", key, "S3 key should have prefix")
			return "s3://bucket/" + key, nil
		},
	}

	file := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			t.Error("file sink should not be called when S3 succeeds")
			return "", errors.New("should not be called")
		},
	}

	fallback := NewFallbackSink(remote, file, "snapshots/", true, logger)

	location, err := fallback.Put(ctx, "test.csv.gz", []byte("x"))
	assert.NoError(t, err)
	assert.Equal(t, "s3://bucket/snapshots/test.csv.gz", location)
}

func TestFallbackSink_S3FailsFallsBackToLocal(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	remote := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			return "", errors.New("S3 connection failed")
		},
	}

	file := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			assert.Equal(t, "test.csv.gz", key, "local key should not have prefix")
			return "data/snapshots/" + key, nil
		},
	}

	fallback := NewFallbackSink(remote, file, "snapshots/", true, logger)

	location, err := fallback.Put(ctx, "test.csv.gz", []byte("x"))
	assert.NoError(t, err)
	assert.Equal(t, "data/snapshots/test.csv.gz", location)
}

func TestFallbackSink_S3Disabled(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	remote := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			t.Error("S3 sink should not be called when disabled")
			return "", nil
		},
	}

	fileCalled := false
	file := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			fileCalled = true
			return key, nil
		},
	}

	fallback := NewFallbackSink(remote, file, "snapshots/", false, logger)

	_, err := fallback.Put(ctx, "test.csv.gz", []byte("x"))
	assert.NoError(t, err)
	assert.True(t, fileCalled)
}

func TestFallbackSink_NilS3Sink(t *testing.T) {
	logger := zerolog.Nop()

	file := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			return key, nil
		},
	}

	fallback := NewFallbackSink(nil, file, "snapshots/", true, logger)

	location, err := fallback.Put(context.Background(), "test.csv.gz", []byte("x"))
	assert.NoError(t, err)
	assert.Equal(t, "test.csv.gz", location)
}

func TestFallbackSink_BothFail(t *testing.T) {
	logger := zerolog.Nop()

	failing := &mockSink{
		putFunc: func(ctx context.Context, key string, body []byte) (string, error) {
			return "", errors.New("disk full")
		},
	}

	fallback := NewFallbackSink(failing, failing, "snapshots/", true, logger)

	_, err := fallback.Put(context.Background(), "test.csv.gz", []byte("x"))
	assert.EqualError(t, err, "disk full")
}
