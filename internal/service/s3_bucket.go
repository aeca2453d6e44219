package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Service sube las fotos de la galería al bucket público del hotel.
type S3Service struct {
	BucketName string
	Region     string
	Client     *s3.Client
}

// NewS3Service initializes the S3 service
func NewS3Service(ctx context.Context, region, bucketName string) (*S3Service, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3Service{
		BucketName: bucketName,
		Region:     region,
		Client:     s3.NewFromConfig(cfg),
	}, nil
}

// UploadFile uploads a file to the S3 bucket and returns the public URL.
// La key se genera con uuid para que dos archivos con el mismo nombre no
// se pisen entre sí.
func (s *S3Service) UploadFile(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := buffer.ReadFrom(file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("gallery/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.BucketName, s.Region, key)
	return url, nil
}
