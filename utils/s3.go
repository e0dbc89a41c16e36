package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var s3Client *s3.Client

// InitS3 prepares the client for the s3 image backend. Only called
// when IMAGE_STORAGE=s3.
func InitS3() {
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
}

// UploadImageToS3 stores one already-encoded image under
// recipe-images/ and returns its public CloudFront URL.
func UploadImageToS3(data []byte, contentType, filename string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("S3 client not initialised; set IMAGE_STORAGE=s3 and call InitS3")
	}

	key := "recipe-images/" + filename
	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	cfURL := os.Getenv("CLOUDFRONT_URL")
	return fmt.Sprintf("%s/%s", cfURL, key), nil
}

// DeleteImageFromS3 removes the object behind a public URL previously
// returned by UploadImageToS3.
func DeleteImageFromS3(publicURL string) error {
	if s3Client == nil {
		return fmt.Errorf("S3 client not initialised")
	}

	key := strings.TrimPrefix(strings.TrimPrefix(publicURL, os.Getenv("CLOUDFRONT_URL")), "/")
	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(os.Getenv("S3_BUCKET")),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %v", err)
	}
	return nil
}
