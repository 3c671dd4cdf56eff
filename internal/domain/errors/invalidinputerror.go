package errors

import "fmt"

type InvalidInputError struct {
	message string
}

func (v *InvalidInputError) Error() string {
	return v.message
}

func (v *InvalidInputError) Kind() string {
	return KindInvalidInput
}

func InvalidInputErrorf(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &InvalidInputError{}
