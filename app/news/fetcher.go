package news

import (
	"context"
	"net/url"
)

// Fetcher is satisfied by *fetch.Client
type Fetcher interface {
	Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
	GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error
}
