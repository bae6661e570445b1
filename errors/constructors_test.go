package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "file does not exist")

	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "file does not exist", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
}

func TestNew_AllErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		CodeInvalidArgument,
		CodeWrongKind,
		CodeNotFound,
		CodeInvalidState,
		CodeUnsupportedAlgorithm,
		CodeCountMismatch,
		CodeIO,
		CodeUnknown,
	}

	for _, code := range codes {
		t.Run(string(code), func(t *testing.T) {
			err := New(code, "test message")
			require.Equal(t, code, err.Code())
			require.NotEmpty(t, err.Classification())
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidArgument, "expected a name, got path %q", "a/b")

	require.NotNil(t, err)
	require.Equal(t, CodeInvalidArgument, err.Code())
	require.Equal(t, `expected a name, got path "a/b"`, err.Message())
}

func TestNew_DefaultClassification(t *testing.T) {
	tests := []struct {
		name          string
		code          ErrorCode
		wantRetryable bool
	}{
		{"io is retryable", CodeIO, true},
		{"invalid argument is permanent", CodeInvalidArgument, false},
		{"wrong kind is permanent", CodeWrongKind, false},
		{"not found is permanent", CodeNotFound, false},
		{"invalid state is permanent", CodeInvalidState, false},
		{"unsupported algorithm is permanent", CodeUnsupportedAlgorithm, false},
		{"count mismatch is permanent", CodeCountMismatch, false},
		{"unknown is permanent", CodeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "test")
			require.Equal(t, tt.wantRetryable, err.Classification().IsRetryable())
		})
	}
}

func TestError_Format(t *testing.T) {
	plain := New(CodeInvalidState, "handle is invalid")
	require.Equal(t, "[INVALID_STATE] handle is invalid", plain.Error())

	wrapped := Wrap(New(CodeNotFound, "inner"), CodeIO, "outer")
	require.Equal(t, "[IO_ERROR] outer: [NOT_FOUND] inner", wrapped.Error())
}
