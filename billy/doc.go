// Package billy provides core.FS implementations backed by go-billy
// filesystems.
//
// Two constructors are available: NewLocal wraps osfs for disk access and
// NewMemory wraps memfs for in-memory filesystems. Both return the same FS
// adapter type, so handle-layer code and tests can swap backends freely.
//
// The adapter also implements the optional core.MetadataFS and core.SymlinkFS
// capabilities. Lstat, Symlink, and Readlink come straight from billy;
// Chmod and Chtimes are only available on the local backend and answer
// core.ErrUnsupported in memory.
//
// Unwrap exposes the underlying billy.Filesystem for integration with other
// go-billy consumers.
package billy
