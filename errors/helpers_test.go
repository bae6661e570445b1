package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCode(t *testing.T) {
	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	require.Equal(t, CodeWrongKind, GetCode(New(CodeWrongKind, "dir expected")))
}

func TestGetCode_ThroughChain(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	outer := fmt.Errorf("context: %w", inner)

	require.Equal(t, CodeNotFound, GetCode(outer))
}

func TestGetClassification(t *testing.T) {
	require.Equal(t, ClassificationPermanent, GetClassification(nil))
	require.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("plain")))
	require.Equal(t, ClassificationRetryable, GetClassification(New(CodeIO, "io")))
}

func TestIsRetryable(t *testing.T) {
	require.False(t, IsRetryable(nil))
	require.False(t, IsRetryable(New(CodeInvalidState, "invalid")))
	require.True(t, IsRetryable(New(CodeIO, "io")))
}

func TestIsAs_Wrappers(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	wrapped := Wrap(sentinel, CodeIO, "wrapped")

	require.True(t, Is(wrapped, sentinel))

	var coded CodedError
	require.True(t, As(wrapped, &coded))
	require.Equal(t, CodeIO, coded.Code())
}
