package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3RepositoryImpl busca objetos do S3 com cache de config por perfil.
type S3RepositoryImpl struct {
	profile  string
	cfgCache map[string]aws.Config
	mu       sync.Mutex
}

// NewS3Repository creates an S3 object fetcher. An empty profile uses the
// default AWS credential chain.
func NewS3Repository(profile string) *S3RepositoryImpl {
	return &S3RepositoryImpl{
		profile:  profile,
		cfgCache: make(map[string]aws.Config),
	}
}

// SetProfile changes the shared config profile used for later fetches.
func (r *S3RepositoryImpl) SetProfile(profile string) {
	r.mu.Lock()
	r.profile = profile
	r.mu.Unlock()
}

func (r *S3RepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[r.profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.cfgCache[r.profile] = cfg
	return cfg, nil
}

// ParseS3URL splits "s3://bucket/key" into bucket and key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 URL %q: %w", raw, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid S3 URL %q: expected s3://bucket/key", raw)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("invalid S3 URL %q: missing object key", raw)
	}
	return u.Host, key, nil
}

// FetchObject downloads the object named by an s3:// URL.
func (r *S3RepositoryImpl) FetchObject(ctx context.Context, rawURL string) ([]byte, error) {
	bucket, key, err := ParseS3URL(rawURL)
	if err != nil {
		return nil, err
	}

	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
