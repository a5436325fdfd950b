package diagnostic

import (
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
)

type (
	// TranslationError is a translation diagnostic returned as an error.
	// Translation of the module it belongs to stops at the first one.
	TranslationError struct {
		Diagnostic
	}

	// InternalError reports a broken invariant of the translator itself,
	// as opposed to input it cannot translate.
	InternalError struct {
		Message string
		PC      loc.PC
	}
)

// Errorf returns a location-tagged translation diagnostic.
func Errorf(file string, line, col int, format string, args ...interface{}) error {
	return &TranslationError{
		Diagnostic: Diagnostic{
			Severity: Error,
			Message:  fmt.Sprintf(format, args...),
			File:     file,
			Line:     line,
			Column:   col,
		},
	}
}

// Internalf returns an InternalError tagged with the caller's position.
func Internalf(format string, args ...interface{}) error {
	return &InternalError{
		Message: fmt.Sprintf(format, args...),
		PC:      loc.Caller(1),
	}
}

func (e *TranslationError) Error() string {
	return e.Diagnostic.String()
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s (at %v)", e.Message, e.PC)
}

// From extracts the diagnostic carried by err.
// Errors that are not diagnostics become an error-level diagnostic for file.
func From(err error, file string) Diagnostic {
	var derr *TranslationError
	if errors.As(err, &derr) {
		return derr.Diagnostic
	}

	return Diagnostic{
		Severity: Error,
		Message:  err.Error(),
		File:     file,
	}
}

// IsInternal reports whether err is, or wraps, an InternalError.
func IsInternal(err error) bool {
	var ierr *InternalError
	return errors.As(err, &ierr)
}
