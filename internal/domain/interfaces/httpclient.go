package interfaces

import "net/http"

// HTTPClient is the transport every networked adapter calls through. It is
// satisfied by *http.Client and by test fakes; adapters add no pooling,
// retries, or timeouts of their own on top of it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
