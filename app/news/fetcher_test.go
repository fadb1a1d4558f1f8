package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
)

var errNotFound = errors.New("not found")

type stubFetcher struct {
	bodies map[string]string
	calls  []string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{bodies: map[string]string{}}
}

func (f *stubFetcher) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	key := rawURL
	if len(params) > 0 {
		key += "?" + params.Encode()
	}
	f.calls = append(f.calls, key)

	body, ok := f.bodies[key]
	if !ok {
		return nil, errNotFound
	}
	return []byte(body), nil
}

func (f *stubFetcher) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	body, err := f.Get(ctx, rawURL, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
