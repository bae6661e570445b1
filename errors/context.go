package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new CodedError with the context field added.
// Existing context fields are preserved.
//
// If err is not a CodedError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.New(errors.CodeIO, "copy failed")
//	err = errors.WithContext(err, "source", src)
//	err = errors.WithContext(err, "destination", dst)
func WithContext(err error, key string, value interface{}) CodedError {
	if err == nil {
		return nil
	}

	coded := asCoded(err)

	newContext := make(map[string]interface{})
	for k, v := range coded.Context() {
		newContext[k] = v
	}
	newContext[key] = value

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        newContext,
		cause:          coded.Unwrap(),
	}
}

// WithContextMap adds multiple context fields to an error.
// Returns a new CodedError with the context fields merged.
// Existing context fields are preserved; new fields override existing ones
// with the same key.
//
// If err is not a CodedError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) CodedError {
	if err == nil {
		return nil
	}

	coded := asCoded(err)

	newContext := make(map[string]interface{})
	for k, v := range coded.Context() {
		newContext[k] = v
	}
	for k, v := range ctx {
		newContext[k] = v
	}

	return &codedError{
		code:           coded.Code(),
		classification: coded.Classification(),
		message:        coded.Message(),
		context:        newContext,
		cause:          coded.Unwrap(),
	}
}

// asCoded extracts the CodedError from err's chain, converting plain errors
// to CodeUnknown wrappers.
func asCoded(err error) CodedError {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded
	}
	return &codedError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}
