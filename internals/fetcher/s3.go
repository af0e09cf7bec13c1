package fetcher

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// S3Fetcher retrieves objects from S3 (or an S3-compatible endpoint).
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher returns an S3Fetcher over an S3 client.
func NewS3Fetcher(client *s3.Client) *S3Fetcher {
	return &S3Fetcher{client: client}
}

func (f *S3Fetcher) FetchFile(ctx context.Context, bucket string, key string) ([]byte, error) {
	output, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get s3://%s/%s", bucket, key)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read s3://%s/%s", bucket, key)
	}

	zap.L().Debug("Object fetched", zap.String("bucket", bucket), zap.String("key", key), zap.Int("size", len(data)))
	return data, nil
}
