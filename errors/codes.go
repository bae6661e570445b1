package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural serialization.
type ErrorCode string

const (
	// Validation errors.

	// CodeInvalidArgument indicates a malformed argument: an empty required
	// string, a path supplied where a bare name is required, or an invalid
	// match pattern.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// CodeWrongKind indicates a file was found where a directory was
	// expected, or vice versa.
	CodeWrongKind ErrorCode = "WRONG_KIND"

	// Resource errors.

	// CodeNotFound indicates the target does not exist and creation was not
	// requested.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// State errors.

	// CodeInvalidState indicates an operation was attempted on a handle that
	// has already been invalidated by a delete or a source-side move.
	CodeInvalidState ErrorCode = "INVALID_STATE"

	// Digest errors.

	// CodeUnsupportedAlgorithm indicates an unrecognized digest algorithm
	// name.
	CodeUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"

	// Comparison errors.

	// CodeCountMismatch indicates two folders could not be compared because
	// they hold different numbers of direct files.
	CodeCountMismatch ErrorCode = "COUNT_MISMATCH"

	// Infrastructure errors.

	// CodeIO indicates a failure in the underlying filesystem primitive
	// (permission denied, disk full, device error). The provider error is
	// preserved as the cause.
	CodeIO ErrorCode = "IO_ERROR"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
