package docgen

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines document rendering error kinds.
type ErrorKind string

const (
	KindQuery      ErrorKind = "query"
	KindFormula    ErrorKind = "formula"
	KindRaster     ErrorKind = "raster"
	KindWrite      ErrorKind = "write"
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindTimeout    ErrorKind = "timeout"
	KindCanceled   ErrorKind = "canceled"
	KindInternal   ErrorKind = "internal"
)

// RenderError wraps errors with a kind and, where known, the placeholder
// responsible for the failure.
type RenderError struct {
	Kind        ErrorKind
	Msg         string
	Placeholder string
	Err         error
}

func (e *RenderError) Error() string {
	msg := e.Msg
	if e.Placeholder != "" {
		msg = msg + " (placeholder " + e.Placeholder + ")"
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewError creates a new render error.
func NewError(kind ErrorKind, msg string, err error) *RenderError {
	return &RenderError{Kind: kind, Msg: msg, Err: err}
}

// NewPlaceholderError creates a render error attributed to a placeholder.
func NewPlaceholderError(kind ErrorKind, placeholder, msg string, err error) *RenderError {
	return &RenderError{Kind: kind, Msg: msg, Placeholder: placeholder, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		kind = renderErr.Kind
		if renderErr.Msg != "" {
			msg = renderErr.Error()
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}

	switch kind {
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindNotFound:
		return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
	case KindQuery:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("query")
	case KindFormula:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("formula")
	case KindRaster:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("raster")
	case KindWrite:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("write")
	case KindTimeout:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("timeout")
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its render error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}
