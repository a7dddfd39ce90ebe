package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/autokeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceiptServiceForTest() *ReceiptService {
	svc := NewReceiptService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "receipts",
	})
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// stubPresignSeams replaces the AWS constructors and records the options
// they were called with.
func stubPresignSeams(t *testing.T) (region, endpoint *string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	region, endpoint = new(string), new(string)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		*region = lo.Region
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		*endpoint = aws.ToString(opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	return region, endpoint
}

func TestReceiptService_PresignPut(t *testing.T) {
	region, endpoint := stubPresignSeams(t)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, ReceiptURLTTL, po.Expires)
		assert.Equal(t, "receipts", aws.ToString(in.Bucket))
		return &v4.PresignedHTTPRequest{URL: "https://put/" + aws.ToString(in.Key), Method: http.MethodPut}, nil
	}

	svc := newReceiptServiceForTest()
	u, err := svc.PresignPut(context.Background(), "receipts/abc/k")
	require.NoError(t, err)

	assert.Equal(t, "https://put/receipts/abc/k", u.URL)
	assert.Equal(t, "receipts/abc/k", u.Key)
	assert.Equal(t, time.Date(2025, 1, 1, 12, 15, 0, 0, time.UTC), u.ExpiresAt)
	assert.Equal(t, "us-east-1", *region)
	assert.Equal(t, "http://127.0.0.1:9000", *endpoint)
}

func TestReceiptService_PresignGet(t *testing.T) {
	stubPresignSeams(t)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://get/" + aws.ToString(in.Key), Method: http.MethodGet}, nil
	}

	u, err := newReceiptServiceForTest().PresignGet(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "https://get/k", u.URL)
}

func TestReceiptService_Errors(t *testing.T) {
	stubPresignSeams(t)
	boom := errors.New("boom")

	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, boom
	}
	_, err := newReceiptServiceForTest().PresignPut(context.Background(), "k")
	assert.ErrorIs(t, err, boom)

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}
	_, err = newReceiptServiceForTest().PresignGet(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}

func TestNewReceiptKey(t *testing.T) {
	at := time.Date(2024, 11, 5, 23, 30, 0, 0, time.FixedZone("x", -3*3600))
	key := NewReceiptKey("log-1", at)

	assert.Regexp(t, regexp.MustCompile(`^receipts/log-1/2024/11/06/[0-9a-f-]{36}$`), key)
	assert.NotEqual(t, key, NewReceiptKey("log-1", at))
}
