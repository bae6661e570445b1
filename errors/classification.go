package errors

// ErrorClassification indicates whether an error should trigger a retry.
// Callers wrapping tree operations in their own retry logic use this to
// distinguish transient I/O failures from contract violations.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed
	// on retry. Example: a provider I/O error caused by a transient device
	// condition.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on
	// retry. Examples: validation errors, kind mismatches, operations on an
	// invalidated handle.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	// Provider failures may be transient (device errors, contention).
	CodeIO: ClassificationRetryable,

	// Contract violations never resolve themselves.
	CodeInvalidArgument:      ClassificationPermanent,
	CodeWrongKind:            ClassificationPermanent,
	CodeNotFound:             ClassificationPermanent,
	CodeInvalidState:         ClassificationPermanent,
	CodeUnsupportedAlgorithm: ClassificationPermanent,
	CodeCountMismatch:        ClassificationPermanent,
	CodeUnknown:              ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Returns ClassificationPermanent if the code is not in the map (safe default).
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
