// Package s3store implements a response cache in an AWS S3 (or
// S3-compatible) bucket.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/store"
)

var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is an AWS S3 storage backend.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
	codec  codec.Codec
}

type settings struct {
	prefix   string
	region   string
	endpoint string
}

// Option configures a Store.
type Option func(*settings)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		s.prefix = normalizePrefix(prefix)
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(s *settings) {
		s.region = region
	}
}

// WithEndpoint sets a custom endpoint for S3-compatible services such as
// MinIO. Path-style addressing is used with custom endpoints.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) {
		s.endpoint = endpoint
	}
}

// New creates a new S3 store from the default AWS credential chain.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	var set settings
	for _, opt := range opts {
		opt(&set)
	}

	var loadOpts []func(*config.LoadOptions) error
	if set.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(set.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if set.endpoint != "" {
			o.BaseEndpoint = aws.String(set.endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client: client,
		bucket: bucketName,
		prefix: set.prefix,
		codec:  c,
	}, nil
}

// Get downloads and decompresses the object for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading object: %w", err)
	}
	defer result.Body.Close()

	data, err := codec.Decode(s.codec, result.Body)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", key, err)
	}
	return data, nil
}

// Put compresses data and uploads it as the object for key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	encoded, err := codec.Encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("object %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          bytes.NewReader(encoded),
		ContentLength: aws.Int64(int64(len(encoded))),
	})
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	return nil
}

// Keys lists the entries under the prefix written with this store's codec.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	pages := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var keys []string
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		for _, obj := range page.Contents {
			if key, ok := store.KeyFromName(aws.ToString(obj.Key), s.prefix, s.codec.Extension()); ok {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases resources.
func (s *Store) Close() error {
	// The S3 client holds no resources that need closing.
	return nil
}

// objectKey returns the full object key for a cache key.
func (s *Store) objectKey(key string) string {
	name := s.prefix + key
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
