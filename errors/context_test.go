package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	err := New(CodeIO, "copy failed")
	err = WithContext(err, "source", "/a/x.txt")
	err = WithContext(err, "destination", "/b/x.txt")

	ctx := err.Context()
	require.Equal(t, "/a/x.txt", ctx["source"])
	require.Equal(t, "/b/x.txt", ctx["destination"])
	require.Equal(t, CodeIO, err.Code())
}

func TestWithContext_Nil(t *testing.T) {
	require.Nil(t, WithContext(nil, "key", "value"))
	require.Nil(t, WithContextMap(nil, map[string]interface{}{"k": "v"}))
}

func TestWithContext_PlainError(t *testing.T) {
	plain := stderrors.New("plain failure")
	err := WithContext(plain, "path", "/tmp/x")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "/tmp/x", err.Context()["path"])
	require.True(t, stderrors.Is(err, plain))
}

func TestWithContextMap_MergesAndOverrides(t *testing.T) {
	err := WithContext(New(CodeIO, "failed"), "path", "/old")
	err = WithContextMap(err, map[string]interface{}{
		"path":  "/new",
		"phase": "delete",
	})

	ctx := err.Context()
	require.Equal(t, "/new", ctx["path"])
	require.Equal(t, "delete", ctx["phase"])
}

func TestContext_DefensiveCopy(t *testing.T) {
	err := WithContext(New(CodeIO, "failed"), "path", "/a")

	ctx := err.Context()
	ctx["path"] = "/mutated"

	require.Equal(t, "/a", err.Context()["path"])
}
