package imagery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/lysyi3m/space-prime/app/catalog"
	"github.com/lysyi3m/space-prime/app/fetch"
)

// stubFetcher serves canned bodies keyed by URL plus encoded query.
type stubFetcher struct {
	bodies   map[string]string
	failures map[string]error
	calls    []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{bodies: map[string]string{}, failures: map[string]error{}}
}

func (f *stubFetcher) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	key := rawURL
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	f.calls = append(f.calls, key)

	if err, ok := f.failures[key]; ok {
		return err
	}
	body, ok := f.bodies[key]
	if !ok {
		return &fetch.ProviderError{URL: key, StatusCode: http.StatusNotFound, Err: errMalformed}
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return &fetch.ProviderError{URL: key, Err: err}
	}
	return nil
}

func newTestNormalizer(t *testing.T, fetcher Fetcher) *Normalizer {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return NewNormalizer(fetcher, cat, Endpoints{
		EPICAPI:      "https://epic.test/api",
		EPICArchive:  "https://epic.test/archive/",
		MarsPhotoAPI: "https://mars.test/api/v1",
	})
}
