package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/autokeeper/internal/server/config"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
	"github.com/google/uuid"
)

// ReceiptURLTTL is how long presigned receipt URLs stay valid.
const ReceiptURLTTL = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ReceiptSigner hands out presigned object-storage URLs for receipt keys.
type ReceiptSigner interface {
	PresignPut(ctx context.Context, key string) (*models.ReceiptURL, error)
	PresignGet(ctx context.Context, key string) (*models.ReceiptURL, error)
}

// ReceiptService signs S3 (or MinIO) URLs for service-log receipts. The
// server never proxies receipt bytes.
type ReceiptService struct {
	config *sc.Config
	now    func() time.Time
}

func NewReceiptService(config *sc.Config) *ReceiptService {
	return &ReceiptService{config: config, now: time.Now}
}

// NewReceiptKey returns a fresh object key for a receipt of serviceLogID.
func NewReceiptKey(serviceLogID string, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("receipts/%s/%04d/%02d/%02d/%s", serviceLogID, at.Year(), int(at.Month()), at.Day(), uuid.NewString())
}

func (s *ReceiptService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading storage config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *ReceiptService) PresignPut(ctx context.Context, key string) (*models.ReceiptURL, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ReceiptURLTTL))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	return &models.ReceiptURL{URL: req.URL, Key: key, ExpiresAt: s.now().Add(ReceiptURLTTL).UTC()}, nil
}

func (s *ReceiptService) PresignGet(ctx context.Context, key string) (*models.ReceiptURL, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ReceiptURLTTL))
	if err != nil {
		return nil, fmt.Errorf("error presigning download: %w", err)
	}

	return &models.ReceiptURL{URL: req.URL, Key: key, ExpiresAt: s.now().Add(ReceiptURLTTL).UTC()}, nil
}
