package billy_test

import (
	"testing"

	"github.com/japaneseTemmie/os-extras/billy"
	"github.com/japaneseTemmie/os-extras/core"
	"github.com/japaneseTemmie/os-extras/handletest"
)

func TestConformanceMemory(t *testing.T) {
	handletest.TestSuite(t, func() core.FS {
		return billy.NewMemory()
	})
}

func TestConformanceLocal(t *testing.T) {
	handletest.TestSuite(t, func() core.FS {
		fsys, err := billy.NewLocal().Chroot(t.TempDir())
		if err != nil {
			t.Fatalf("failed to chroot: %v", err)
		}
		return fsys
	})
}
