package gdrive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/dataset"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	"github.com/JonnyRank/bigdataball-data/internal/platform/resilience"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const listFields = "nextPageToken, files(id, name, createdTime)"

var errDriveTransient = crerr.New("google drive transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads shared BigDataBall folders through the Drive v3 API.
type Client struct {
	service *drive.Service
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

var _ dataset.Source = (*Client)(nil)

func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPClient == nil {
		return nil, crerr.New("drive client requires an authorized http client")
	}

	opts := []option.ClientOption{option.WithHTTPClient(cfg.HTTPClient)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(baseURL, "/")+"/"))
	}
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "create drive service")
	}

	return &Client{
		service: service,
		logger:  logger,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

// NewHTTPClient returns an instrumented client that authorizes every request
// with tokens from ts.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = time.Minute
	}
	base := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	client.Timeout = timeout
	return client
}

func (c *Client) List(ctx context.Context, folderID, match string) ([]dataset.RemoteFile, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, fmt.Errorf("%w: folder id is required", usecase.ErrInvalidInput)
	}

	query := fmt.Sprintf("'%s' in parents and name contains '%s' and trashed = false", escapeQuery(folderID), escapeQuery(match))
	var files []dataset.RemoteFile
	err := c.call(ctx, "list", func(ctx context.Context) error {
		files = files[:0]
		return c.service.Files.List().
			Q(query).
			OrderBy("createdTime").
			Fields(googleapi.Field(listFields)).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Pages(ctx, func(page *drive.FileList) error {
				for _, f := range page.Files {
					files = append(files, c.remoteFile(ctx, f))
				}
				return nil
			})
	})
	if err != nil {
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("drive.folder_id", folderID),
		attribute.Int("drive.files", len(files)),
	)
	return files, nil
}

func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, fmt.Errorf("%w: file id is required", usecase.ErrInvalidInput)
	}

	var body io.ReadCloser
	err := c.call(ctx, "download", func(ctx context.Context) error {
		resp, err := c.service.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
		if err != nil {
			return err
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// call runs fn through the breaker. Only transient failures count against
// the breaker; client errors such as a missing file are returned as is.
func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	var permanent error
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && !isTransient(err) {
			permanent = err
			return nil
		}
		return err
	})

	switch {
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "google drive circuit breaker rejected request", "operation", op, "state", c.breaker.State())
		return fmt.Errorf("%w: google drive is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case err != nil:
		return crerr.Mark(crerr.Wrapf(err, "drive %s", op), errDriveTransient)
	case permanent != nil:
		return crerr.Wrapf(permanent, "drive %s", op)
	}
	return nil
}

func (c *Client) remoteFile(ctx context.Context, f *drive.File) dataset.RemoteFile {
	out := dataset.RemoteFile{ID: f.Id, Name: f.Name}
	if f.CreatedTime == "" {
		return out
	}
	created, err := time.Parse(time.RFC3339, f.CreatedTime)
	if err != nil {
		c.logger.WarnContext(ctx, "drive file has unparseable createdTime", "file", f.Name, "created_time", f.CreatedTime)
		return out
	}
	out.CreatedTime = created.UTC()
	return out
}

func isTransient(err error) bool {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if crerr.Is(err, ErrNotAuthorized) {
		return false
	}
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}

// escapeQuery quotes a value for a Drive search expression.
func escapeQuery(v string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
}
