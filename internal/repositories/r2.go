package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/rohits-web03/folio/internal/config"
	"github.com/rohits-web03/folio/internal/models"
)

const uploadURLExpiry = 15 * time.Minute

// Image content types accepted for project images, with the extension used for the object key.
var imageExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// ImageUpload describes where a client should PUT a project image and the
// URL to store in Project.ImageURL afterwards.
type ImageUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ImageStore hands out upload slots for project images.
type ImageStore interface {
	PresignUpload(ctx context.Context, contentType string) (ImageUpload, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// R2ImageStore stores project images in a Cloudflare R2 bucket through the S3 API.
type R2ImageStore struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	publicBaseURL string
}

var _ ImageStore = (*R2ImageStore)(nil)

// NewR2ImageStore builds an R2 client using static credentials and the account endpoint.
func NewR2ImageStore(cfg config.R2Config) *R2ImageStore {
	return newS3ImageStore(cfg, fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
}

func newS3ImageStore(cfg config.R2Config, endpoint string) *R2ImageStore {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	log.Println("Successfully initialized R2 client")

	return &R2ImageStore{
		client:        client,
		bucket:        cfg.BucketName,
		endpoint:      endpoint,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// PresignUpload creates a presigned PUT URL for a new project image.
func (s *R2ImageStore) PresignUpload(ctx context.Context, contentType string) (ImageUpload, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return ImageUpload{}, models.NewValidationError("unsupported image type "+contentType, "contentType")
	}
	key := "projects/" + uuid.NewString() + ext

	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return ImageUpload{}, err
	}

	return ImageUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.publicURL(key),
		ExpiresAt: time.Now().Add(uploadURLExpiry),
	}, nil
}

func (s *R2ImageStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return s.endpoint + "/" + s.bucket + "/" + key
}

// Exists checks if a given object key exists in the bucket.
// Returns true if the object exists, false if not, and an error if something went wrong.
func (s *R2ImageStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NotFound
		if errors.As(err, &nsk) {
			return false, nil
		}
		// auth, network, ...
		return false, err
	}
	return true, nil
}
