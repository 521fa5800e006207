package market

import "fmt"

// FetchError is any failure to obtain a record from the market API: the
// request could not be sent, the server answered with a non-2xx status, or
// the body was not the expected JSON. Only FetchError is eligible for
// placeholder substitution.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: http %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
