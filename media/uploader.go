package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Uploader pushes payloads to an external object gateway over HTTP and
// returns the URL the gateway assigned.
type Uploader struct {
	client *resty.Client
	path   string
	field  string
}

type UploaderOptions struct {
	BaseURL string
	Path    string
	Field   string
	Timeout time.Duration
	Headers map[string]string
}

type UploaderOption func(*UploaderOptions)

// WithUploadPath overrides the gateway's upload endpoint path.
func WithUploadPath(path string) UploaderOption {
	return func(o *UploaderOptions) {
		if path != "" {
			o.Path = path
		}
	}
}

// WithFieldName overrides the multipart field the gateway expects.
func WithFieldName(field string) UploaderOption {
	return func(o *UploaderOptions) {
		if field != "" {
			o.Field = field
		}
	}
}

// WithUploadTimeout bounds each upload request.
func WithUploadTimeout(d time.Duration) UploaderOption {
	return func(o *UploaderOptions) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithUploadHeaders sets extra headers, typically gateway credentials.
func WithUploadHeaders(headers map[string]string) UploaderOption {
	return func(o *UploaderOptions) {
		if len(headers) == 0 {
			return
		}
		o.Headers = make(map[string]string, len(headers))
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

func defaultUploaderOptions() UploaderOptions {
	return UploaderOptions{
		Path:    "/upload",
		Field:   "file",
		Timeout: 30 * time.Second,
	}
}

// NewUploader builds an Uploader pointed at the gateway base URL.
func NewUploader(baseURL string, opts ...UploaderOption) (*Uploader, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("media: gateway base URL required")
	}
	cfg := defaultUploaderOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rc := resty.New().SetBaseURL(baseURL).SetTimeout(cfg.Timeout)
	if len(cfg.Headers) > 0 {
		rc.SetHeaders(cfg.Headers)
	}
	return &Uploader{client: rc, path: cfg.Path, field: cfg.Field}, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends the payload as one multipart request. The stored name is
// prefixed with a random id so concurrent uploads of the same file name
// never collide.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		return "", ErrMissingName
	}
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}

	stored := uuid.NewString() + "-" + sanitizeName(name)
	var result uploadResponse
	resp, err := u.client.R().
		SetContext(ctx).
		SetFileReader(u.field, stored, bytes.NewReader(data)).
		SetResult(&result).
		Post(u.path)
	if err != nil {
		return "", fmt.Errorf("media: upload: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("media: upload: http %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if result.URL == "" {
		return "", fmt.Errorf("media: gateway returned no url")
	}
	return result.URL, nil
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, "\\", "_")
}
