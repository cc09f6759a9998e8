package util

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds outbound fetches when the caller passes zero.
const DefaultTimeout = 12 * time.Second

// MaxBodySize caps the bytes read from any response.
var MaxBodySize int64 = 32 << 20

// ErrBodyTooLarge is returned when a response exceeds MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// GetBytes fetches rawURL and returns the body. Non-2xx responses are errors.
func GetBytes(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	// query strings may carry API keys
	where := req.URL.Host + req.URL.Path
	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, errors.Wrapf(err, "get %s", where)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("get %s: status %d", where, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if int64(len(b)) > MaxBodySize {
		return nil, errors.Wrapf(ErrBodyTooLarge, "get %s", where)
	}
	return b, nil
}
