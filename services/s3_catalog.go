package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the slice of the S3 API the catalog needs.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3CatalogSource reads <prefix>/<slot>.json objects from a bucket.
type S3CatalogSource struct {
	client objectGetter
	bucket string
	prefix string
}

func NewS3CatalogSource(ctx context.Context, region, bucket, prefix string) (*S3CatalogSource, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 catalog source")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return &S3CatalogSource{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

func (s *S3CatalogSource) key(slot models.MealSlot) string {
	return path.Join(s.prefix, string(slot)+".json")
}

func (s *S3CatalogSource) LoadRecipes(ctx context.Context, slot models.MealSlot) ([]RecipeRecord, error) {
	key := s.key(slot)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}
	recs, err := decodeRecipeRecords(b)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, key, err)
	}
	return recs, nil
}
