package errors

import "fmt"

type UpstreamError struct {
	message string
	status  int
}

func (v *UpstreamError) Error() string {
	return v.message
}

func (v *UpstreamError) Kind() string {
	return KindUpstream
}

// Status returns the HTTP status the upstream rejected with, 0 if unknown.
func (v *UpstreamError) Status() int {
	return v.status
}

func UpstreamErrorf(format string, args ...any) *UpstreamError {
	return &UpstreamError{
		message: fmt.Sprintf(format, args...),
	}
}

func UpstreamStatusErrorf(status int, format string, args ...any) *UpstreamError {
	return &UpstreamError{
		message: fmt.Sprintf(format, args...),
		status:  status,
	}
}

var _ error = &UpstreamError{}
