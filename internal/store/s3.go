package store

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/amoreira/letterpress/internal/cache"
	"github.com/amoreira/letterpress/internal/model"
)

// S3SecondaryStore implements SecondaryStore on an S3-compatible bucket,
// for deployments where the server has no durable local disk.
type S3SecondaryStore struct {
	client *s3.Client
	bucket string

	postsCache *cache.Cache[string, *model.Post]
}

func NewS3SecondaryStore(accessKeyID, accessKeySecret, baseEndpoint, bucket string) (*S3SecondaryStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
		}
	})

	return &S3SecondaryStore{
		client:     client,
		bucket:     bucket,
		postsCache: cache.NewCache[string, *model.Post](),
	}, nil
}

func (s *S3SecondaryStore) ListSlugs() ([]string, error) {
	slugs := make([]string, 0)

	var continuation *string
	for {
		out, err := s.client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, err
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, ".md") {
				slugs = append(slugs, strings.TrimSuffix(key, ".md"))
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuation = out.NextContinuationToken
	}

	return slugs, nil
}

func (s *S3SecondaryStore) GetBySlug(slug string) (*model.Post, error) {
	if post, ok := s.postsCache.Get(slug); ok {
		return post, nil
	}

	out, err := s.client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(slug + ".md"),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}

	var modTime time.Time
	if out.LastModified != nil {
		modTime = out.LastModified.UTC()
	}

	post := parseRenderedPost(slug, data, modTime)
	s.postsCache.Set(slug, post)
	return post, nil
}

func (s *S3SecondaryStore) WriteRendered(slug, content string) error {
	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(slug + ".md"),
		Body:        strings.NewReader(content),
		ContentType: aws.String("text/markdown"),
	})
	if err != nil {
		return err
	}

	s.postsCache.Delete(slug)
	return nil
}
