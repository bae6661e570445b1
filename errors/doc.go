// Package errors provides the structured error system used throughout the
// library. It extends Go's standard error handling with error codes, retry
// classification, and context preservation while staying compatible with
// errors.Is, errors.As, and errors.Unwrap.
//
// Every failure surfaced by the handle layer carries one of the codes defined
// in this package. Validation failures (CodeInvalidArgument, CodeWrongKind)
// are raised before any filesystem I/O is attempted; provider failures are
// wrapped as CodeIO with the original error preserved in the chain.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeNotFound {
//	    // target did not exist and creation was not requested
//	}
package errors
