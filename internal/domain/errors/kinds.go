package errors

// Error kinds reported inside tool result envelopes. Every failure a tool
// can produce collapses into one of these four.
const (
	KindInvalidInput = "invalid_input"
	KindTransport    = "transport"
	KindUpstream     = "upstream"
	KindDecode       = "decode"
)

// Kinder is implemented by all error types in this package.
type Kinder interface {
	error
	Kind() string
}

// KindOf returns the kind of err, or KindTransport when err does not carry
// one. Transport is the safest default: it tells the caller the call may
// simply be retried later.
func KindOf(err error) string {
	if k, ok := err.(Kinder); ok {
		return k.Kind()
	}
	return KindTransport
}
