package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/sir_venger/filedrop_lite/internal/config"
	"github.com/sir_venger/filedrop_lite/internal/models"
)

// S3Store — адаптер S3-совместимого хранилища (AWS S3, R2, MinIO) поверх
// multipart-протокола бэкенда.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3 собирает клиент по конфигурации. Кастомный endpoint включает
// path-style адресацию — так работают R2 и MinIO.
func NewS3(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Initiate открывает multipart-сессию и сохраняет метаданные будущего объекта.
func (s *S3Store) Initiate(ctx context.Context, key, contentType string, metadata map[string]string) (string, error) {
	out, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return "", translate("create multipart upload", err)
	}

	return aws.ToString(out.UploadId), nil
}

// UploadPart загружает ровно одну часть и возвращает её ETag.
func (s *S3Store) UploadPart(ctx context.Context, key, uploadID string, partNumber int32, body io.Reader, size int64) (string, error) {
	out, err := s.client.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		UploadId:      aws.String(uploadID),
		PartNumber:    aws.Int32(partNumber),
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", translate(fmt.Sprintf("upload part %d", partNumber), err)
	}

	return aws.ToString(out.ETag), nil
}

// Complete финализирует сессию. Список частей обязан быть отсортирован по
// номеру — это гарантирует вызывающий.
func (s *S3Store) Complete(ctx context.Context, key, uploadID string, parts []models.PartAck) (string, error) {
	completed := make([]types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, types.CompletedPart{
			ETag:       aws.String(p.ETag),
			PartNumber: aws.Int32(p.PartNumber),
		})
	}

	out, err := s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		return "", translate("complete multipart upload", err)
	}

	return aws.ToString(out.Location), nil
}

// Abort отменяет сессию, чтобы частично загруженные части не копились в бакете.
func (s *S3Store) Abort(ctx context.Context, key, uploadID string) error {
	_, err := s.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		return translate("abort multipart upload", err)
	}

	return nil
}

// Head возвращает метаданные объекта без тела.
func (s *S3Store) Head(ctx context.Context, key string) (models.ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return models.ObjectInfo{}, translate("head object", err)
	}

	return models.ObjectInfo{
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		Metadata:     out.Metadata,
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// Get возвращает метаданные и поток тела объекта.
func (s *S3Store) Get(ctx context.Context, key string) (models.ObjectInfo, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return models.ObjectInfo{}, nil, translate("get object", err)
	}

	info := models.ObjectInfo{
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		Metadata:     out.Metadata,
		LastModified: aws.ToTime(out.LastModified),
	}

	return info, out.Body, nil
}

// translate сводит любую ошибку SDK ровно к одной доменной ошибке.
// Retry здесь не делается: неуспех шага — окончательный ответ вызывающему.
func translate(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchUpload":
			return fmt.Errorf("%s: %w", op, models.ErrNotFound)
		case "InvalidPart", "InvalidPartOrder":
			return fmt.Errorf("%s: %w: %v", op, models.ErrIncomplete, err)
		}
	}

	return fmt.Errorf("%s: %w: %v", op, models.ErrBackendFailure, err)
}
