// internal/services/image_source.go
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/abinexis/homepage-admin/internal/config"
	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
)

var ErrInvalidImageSource = errors.New("unsupported image source")

func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL decodes a data: URL into an upload. Both base64 and
// percent-encoded payloads are accepted.
func DecodeDataURL(raw string) (*models.ImageUpload, error) {
	if !IsDataURL(raw) {
		return nil, fmt.Errorf("%w: not a data URL", ErrInvalidImageSource)
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URL has no payload", ErrInvalidImageSource)
	}

	params := strings.Split(meta, ";")
	contentType := params[0]
	if contentType == "" {
		contentType = "text/plain"
	}
	isBase64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageSource, err)
	}

	return &models.ImageUpload{
		Filename:    "banner" + extensionFor(contentType),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}

// ImageResolver turns a banner image source into the image part of a
// banner form. Sources are http(s) URLs (sent as imageUrl), data: URLs and
// s3://bucket/key objects (both uploaded as binary).
type ImageResolver struct {
	s3Client      s3iface.S3API
	defaultBucket string
}

func NewImageResolver(cfg config.AWSConfig) (*ImageResolver, error) {
	if cfg.AccessKeyID == "" {
		// s3:// sources are rejected without credentials
		return &ImageResolver{defaultBucket: cfg.S3Bucket}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewImageResolverWithClient(s3.New(sess), cfg.S3Bucket), nil
}

func NewImageResolverWithClient(client s3iface.S3API, defaultBucket string) *ImageResolver {
	return &ImageResolver{s3Client: client, defaultBucket: defaultBucket}
}

// Resolve fills the image fields of form from source. An empty source
// leaves the form untouched.
func (r *ImageResolver) Resolve(ctx context.Context, source string, form *models.BannerForm) error {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return nil
	case IsDataURL(source):
		upload, err := DecodeDataURL(source)
		if err != nil {
			return imageSourceError(err)
		}
		form.Image = upload
	case strings.HasPrefix(source, "s3://"):
		upload, err := r.download(ctx, source)
		if err != nil {
			return imageSourceError(err)
		}
		form.Image = upload
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		if _, err := url.ParseRequestURI(source); err != nil {
			return imageSourceError(err)
		}
		form.ImageURL = source
	default:
		return imageSourceError(ErrInvalidImageSource)
	}
	return nil
}

func (r *ImageResolver) download(ctx context.Context, source string) (*models.ImageUpload, error) {
	if r == nil || r.s3Client == nil {
		return nil, fmt.Errorf("%w: S3 client not configured", ErrInvalidImageSource)
	}

	bucket, key, err := parseS3URI(source, r.defaultBucket)
	if err != nil {
		return nil, err
	}

	out, err := r.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	defer out.Body.Close()

	// one byte over the limit is enough to reject it
	data, err := io.ReadAll(io.LimitReader(out.Body, models.MaxBannerImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object: %w", err)
	}

	contentType := aws.StringValue(out.ContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &models.ImageUpload{
		Filename:    path.Base(key),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// parseS3URI splits s3://bucket/key. s3:///key uses the default bucket.
func parseS3URI(source, defaultBucket string) (string, string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidImageSource, err)
	}
	bucket := u.Host
	if bucket == "" {
		bucket = defaultBucket
	}
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidImageSource, source)
	}
	return bucket, key, nil
}

func imageSourceError(err error) error {
	return &ValidationError{
		Field:      "image",
		MessageKey: i18n.KeyBannerImageSourceInvalid,
		Details:    err.Error(),
	}
}
