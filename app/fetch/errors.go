package fetch

import "fmt"

// ProviderError is a failed upstream call: transport error, non-2xx status,
// or a body that does not decode. Callers recover from it locally.
type ProviderError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider request to %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider request to %s failed: %v", e.URL, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
