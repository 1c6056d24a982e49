package mines

import (
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("invalid argument")

type ArgumentError struct {
	message string
}

func argumentErrorf(format string, args ...any) ArgumentError {
	return ArgumentError{fmt.Sprintf(format, args...)}
}

// [ArgumentError] implements [error]
func (e ArgumentError) Error() string {
	return ErrInvalidArgument.Error() + ": " + e.message
}

// errors.Is(err, ErrInvalidArgument) holds for every [ArgumentError]
func (e ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
