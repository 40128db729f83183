package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jacha_aru_api_go/config"
	"jacha_aru_api_go/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned by Get when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// StorageProvider stores respuesta documents
type StorageProvider interface {
	Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StoredObject, error)
	Put(ctx context.Context, r io.Reader, key, contentType string, size int64) (*StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error) // reader, content type
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Name() string
}

// StoredObject describes a stored document
type StoredObject struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Storage is the process wide provider, set by InitializeStorage
var Storage StorageProvider

// InitializeStorage selects R2 when its credentials are configured and the
// bucket answers, the local upload directory otherwise.
func InitializeStorage(cfg *config.Config) StorageProvider {
	log := logger.Named("storage")

	if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
		Storage = NewLocalStorage(cfg.UploadDir)
		log.Info("using local storage", zap.String("dir", cfg.UploadDir))
		return Storage
	}

	r2, err := NewR2Storage(cfg)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err = r2.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.R2BucketName)})
	}
	if err != nil {
		log.Warn("R2 unavailable, falling back to local storage", zap.Error(err))
		Storage = NewLocalStorage(cfg.UploadDir)
		return Storage
	}

	Storage = r2
	log.Info("using R2 storage", zap.String("bucket", cfg.R2BucketName))
	return Storage
}

// R2Storage keeps documents in a Cloudflare R2 bucket through the S3 API
type R2Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.R2BucketName,
	}, nil
}

func (r *R2Storage) Name() string { return "r2" }

func (r *R2Storage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StoredObject, error) {
	return uploadMultipart(ctx, r, file, key)
}

func (r *R2Storage) Put(ctx context.Context, body io.Reader, key, contentType string, size int64) (*StoredObject, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to R2: %w", err)
	}
	return &StoredObject{Key: key, Size: size, ContentType: contentType}, nil
}

func (r *R2Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object from R2: %w", err)
	}
	return out.Body, aws.ToString(out.ContentType), nil
}

func (r *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// URL returns a presigned download link valid for ttl
func (r *R2Storage) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign: %w", err)
	}
	return req.URL, nil
}

// LocalStorage keeps documents under a directory on disk
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (l *LocalStorage) Name() string { return "local" }

func (l *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.baseDir, clean), nil
}

func (l *LocalStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StoredObject, error) {
	return uploadMultipart(ctx, l, file, key)
}

func (l *LocalStorage) Put(_ context.Context, body io.Reader, key, contentType string, _ int64) (*StoredObject, error) {
	full, err := l.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, body)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	return &StoredObject{Key: key, Size: written, ContentType: contentType}, nil
}

func (l *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	full, err := l.path(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, contentTypeFor(key), nil
}

func (l *LocalStorage) Delete(_ context.Context, key string) error {
	full, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL is the API download route; local files are never exposed directly
func (l *LocalStorage) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "", nil
}

func uploadMultipart(ctx context.Context, p StorageProvider, file *multipart.FileHeader, key string) (*StoredObject, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFor(file.Filename)
	}
	return p.Put(ctx, src, key, contentType, file.Size)
}

func contentTypeFor(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return "application/octet-stream"
}

// GenerateStorageKey builds a collision free key under prefix keeping the extension
func GenerateStorageKey(prefix, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s/%s_%d%s", strings.Trim(prefix, "/"), uuid.New().String(), time.Now().Unix(), ext)
}

// RespuestaDocumentKey is the storage key for a document attached to a respuesta
func RespuestaDocumentKey(kind string, consultaID uint, originalFilename string) string {
	return GenerateStorageKey(fmt.Sprintf("respuestas/%s/%d", kind, consultaID), originalFilename)
}
