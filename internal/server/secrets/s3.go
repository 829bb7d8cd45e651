package secrets

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/tgauth/internal/common"
)

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// seams for tests
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Options locate the token object and the store holding it.
type S3Options struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Key          string
}

// S3 fetches the token object on every lookup.
type S3 struct {
	client objectGetter
	bucket string
	key    string
}

// NewS3 builds an S3 client with static credentials and path-style
// addressing so MinIO endpoints work.
func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(opts *s3.Options) {
		if o.BaseEndpoint != "" {
			opts.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		opts.UsePathStyle = true
	})

	return &S3{client: client, bucket: o.Bucket, key: o.Key}, nil
}

func (s *S3) Lookup(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: s3://%s/%s: %v", common.ErrorSecretUnavailable, s.bucket, s.key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(io.LimitReader(out.Body, 4096))
	if err != nil {
		return nil, fmt.Errorf("%w: read object: %v", common.ErrorSecretUnavailable, err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, common.ErrorSecretUnavailable
	}
	return b, nil
}
