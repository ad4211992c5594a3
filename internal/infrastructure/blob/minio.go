package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"academic-hub/config"
	"academic-hub/internal/application/ports"
)

var ErrForeignRef = errors.New("content ref does not belong to this bucket")

type Client struct {
	logger     *zap.Logger
	minio      *minio.Client
	bucket     string
	publicBase string
	partSize   uint64
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
	publicBase string,
) (*Client, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.BucketUploads)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketUploads, err)
	}
	if !exists {
		if err = cli.MakeBucket(ctx, cfg.BucketUploads, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketUploads, err)
		}
		logger.Info("bucket created", zap.String("bucket", cfg.BucketUploads))
	}

	logger.Info("blob store connected successfully", zap.String("endpoint", cfg.Endpoint))

	return &Client{
		logger:     logger,
		minio:      cli,
		bucket:     cfg.BucketUploads,
		publicBase: strings.TrimRight(publicBase, "/"),
		partSize:   cfg.PartSizeBytes,
	}, nil
}

// PutResumable uploads r as a multipart object; minio-go retries failed parts.
// onProgress may be nil.
func (c *Client) PutResumable(
	ctx context.Context,
	path string,
	r io.Reader,
	size int64,
	contentType string,
	onProgress ports.ProgressFunc,
) error {
	p := newProgress(size, onProgress)

	_, err := c.minio.PutObject(ctx, c.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		Progress:    p,
		PartSize:    c.partSize,
	})
	if err != nil {
		return err
	}
	p.done()

	return nil
}

// ContentRef: "<public-base>/<bucket>/<escaped path>".
func (c *Client) ContentRef(path string) string {
	if path == "" {
		return ""
	}
	segs := strings.Split(path, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return c.publicBase + "/" + c.bucket + "/" + strings.Join(segs, "/")
}

func (c *Client) Delete(ctx context.Context, ref string) error {
	key, err := c.objectKey(ref)
	if err != nil {
		return err
	}

	return c.minio.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

func (c *Client) objectKey(ref string) (string, error) {
	prefix := c.publicBase + "/" + c.bucket + "/"
	rest, ok := strings.CutPrefix(ref, prefix)
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignRef, ref)
	}
	return url.PathUnescape(rest)
}

// progress is handed to minio as PutObjectOptions.Progress: minio "reads"
// from it the number of bytes it has just sent.
type progress struct {
	mu     sync.Mutex
	total  int64
	sent   int64
	last   float64
	report ports.ProgressFunc
}

func newProgress(total int64, report ports.ProgressFunc) *progress {
	return &progress{total: total, last: -1, report: report}
}

func (p *progress) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sent += int64(len(b))
	if p.total > 0 {
		p.emit(min(float64(p.sent)*100/float64(p.total), 100))
	}
	return len(b), nil
}

func (p *progress) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emit(100)
}

// emit never reports a smaller value than before.
func (p *progress) emit(pct float64) {
	if p.report == nil || pct <= p.last {
		return
	}
	p.last = pct
	p.report(pct)
}
