package errors

import "fmt"

type DecodeError struct {
	message string
}

func (v *DecodeError) Error() string {
	return v.message
}

func (v *DecodeError) Kind() string {
	return KindDecode
}

func DecodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &DecodeError{}
