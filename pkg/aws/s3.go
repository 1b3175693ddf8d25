package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used to archive reports
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ReportArchiver writes deletion reports to an S3 bucket
type ReportArchiver struct {
	client S3API
	bucket string
}

// NewReportArchiver creates a ReportArchiver for bucket
func NewReportArchiver(cfg aws.Config, bucket string) *ReportArchiver {
	return NewReportArchiverWithAPI(s3.NewFromConfig(cfg), bucket)
}

// NewReportArchiverWithAPI creates a ReportArchiver over any S3API implementation
func NewReportArchiverWithAPI(api S3API, bucket string) *ReportArchiver {
	return &ReportArchiver{client: api, bucket: bucket}
}

// Archive stores body as a text object under key
func (a *ReportArchiver) Archive(ctx context.Context, key, body string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(body),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("error writing s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}
