package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"orfanato-app/internal/domain/media"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ErrUpload is the only error Upload surfaces; the SDK error is logged.
var ErrUpload = errors.New("failed to upload file")

type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // S3-compatible services only, addressed path-style
	Environment     string // key prefix
}

// Gateway stores media files in one bucket under {environment}/uploads/.
type Gateway struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

var _ media.Storage = (*Gateway)(nil)

func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Gateway, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Gateway{
		client:   client,
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}, nil
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitizeName(name string) string {
	return unsafeName.ReplaceAllString(name, "")
}

func (g *Gateway) key(originalName string) string {
	return fmt.Sprintf("%s/uploads/%d_%s", g.cfg.Environment, g.now().UnixMilli(), sanitizeName(originalName))
}

// PublicURL is the canonical URL of an object key.
func (g *Gateway) PublicURL(key string) string {
	if g.cfg.Endpoint != "" {
		return strings.TrimRight(g.cfg.Endpoint, "/") + "/" + g.cfg.Bucket + "/" + key
	}
	return "https://" + g.cfg.Bucket + ".s3.amazonaws.com/" + key
}

func (g *Gateway) hostMarker() string {
	if g.cfg.Endpoint != "" {
		return strings.TrimRight(g.cfg.Endpoint, "/") + "/" + g.cfg.Bucket + "/"
	}
	return g.cfg.Bucket + ".s3.amazonaws.com/"
}

// KeyFromURL extracts the object key from one of our public URLs.
func (g *Gateway) KeyFromURL(url string) (string, bool) {
	parts := strings.SplitN(url, g.hostMarker(), 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (g *Gateway) Upload(ctx context.Context, f *media.File) (string, error) {
	if f == nil {
		return "", ErrUpload
	}
	key := g.key(f.OriginalName)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := g.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		g.log.Error().Err(err).Str("key", key).Msg("s3 upload failed")
		return "", ErrUpload
	}

	g.log.Debug().Str("key", key).Int64("size", f.Size).Msg("file uploaded")
	return g.PublicURL(key), nil
}

// Delete removes the object behind url. URLs that do not point into the
// bucket are skipped with a warning.
func (g *Gateway) Delete(ctx context.Context, url string) error {
	key, ok := g.KeyFromURL(url)
	if !ok {
		g.log.Warn().Str("url", url).Msg("could not extract s3 key, skipping delete")
		return nil
	}

	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
