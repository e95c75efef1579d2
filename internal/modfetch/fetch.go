// Package modfetch retrieves mod pack manifests from remote and local
// sources: http(s) URLs, s3:// URLs, and plain file paths.
package modfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/modkit"
)

// S3API is the slice of the S3 client the fetcher uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher downloads mod packs. The zero value is not usable; construct
// with New.
type Fetcher struct {
	client *http.Client
	s3     S3API
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithS3 enables s3:// sources using the given client.
func WithS3(api S3API) Option {
	return func(f *Fetcher) {
		f.s3 = api
	}
}

// WithLogger sets the fetcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the raw bytes at source. Supported sources are
// http(s):// and s3:// URLs and local file paths (with or without a
// file:// prefix).
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return f.fetchHTTP(ctx, source)
	case strings.HasPrefix(source, "s3://"):
		return f.fetchS3(ctx, source)
	case strings.HasPrefix(source, "file://"):
		return f.fetchFile(strings.TrimPrefix(source, "file://"))
	case strings.Contains(source, "://"):
		return nil, errors.New("E305").WithDetail("Unsupported source scheme in " + source)
	default:
		return f.fetchFile(source)
	}
}

// FetchManifest downloads, optionally checksum-verifies, and parses a mod
// manifest. checksum is the expected hex sha256 of the raw bytes; pass ""
// to skip verification.
func (f *Fetcher) FetchManifest(ctx context.Context, source, checksum string) (*modkit.Manifest, error) {
	data, err := f.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	if checksum != "" {
		sum := sha256.Sum256(data)
		actual := hex.EncodeToString(sum[:])
		if !strings.EqualFold(actual, checksum) {
			return nil, errors.New("E304").WithDetail(fmt.Sprintf(
				"Expected sha256 %s, got %s", checksum, actual))
		}
	}

	m, err := modkit.ParseManifest(data)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("fetched mod manifest", "source", source, "mod", m.ModID, "entries", m.EntryCount())
	return m, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.New("E300").
			WithDetail("Could not connect to " + url + ": " + err.Error()).
			WithSuggestion("Check your internet connection")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("E300").
			WithDetail(fmt.Sprintf("%s returned status %d", url, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}
	return data, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, source string) ([]byte, error) {
	if f.s3 == nil {
		return nil, errors.New("E305").
			WithDetail("No S3 client configured").
			WithSuggestion("Set the s3 section in crewhub.json")
	}

	rest := strings.TrimPrefix(source, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, errors.New("E305").WithDetail("S3 sources must look like s3://bucket/key, got " + source)
	}

	out, err := f.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}
	return data, nil
}

func (f *Fetcher) fetchFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}
	return data, nil
}
