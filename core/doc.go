// Package core defines the filesystem primitives the handle layer is built
// on. The handle package never touches the operating system directly; it
// talks to an implementation of core.FS, which supplies the minimal atomic
// operations the tree algorithms need: existence and kind queries, directory
// listing, file open/create/append, removal, rename, and recursive directory
// creation.
//
// # Design Philosophy
//
//   - Zero dependencies: only uses the Go standard library
//   - Interface composition: small focused interfaces compose into larger contracts
//   - Stdlib compatibility: extends fs.FS and fs.File rather than replacing them
//   - Optional capabilities: use type assertions for provider-specific features
//
// # Interface Hierarchy
//
// The main FS interface is composed of five sub-interfaces:
//
//   - ReadFS: read-only operations (Open, Stat, ReadDir, ReadFile, Exists)
//   - WriteFS: write operations (Create, OpenFile, WriteFile, Mkdir, MkdirAll)
//   - ManageFS: file management (Remove, RemoveAll, Rename)
//   - WalkFS: directory traversal (Walk)
//   - ChrootFS: scoped filesystem views (Chroot)
//
// Optional interfaces for provider-specific capabilities:
//
//   - MetadataFS: metadata operations (Lstat, Chmod, Chtimes)
//   - SymlinkFS: symbolic link operations (Symlink, Readlink)
//
// The handle layer's symlink safety rules (delete a link, never its target)
// depend on MetadataFS.Lstat; providers without it treat every entry as a
// regular file or directory.
//
// # Provider Implementations
//
// This package contains only interface definitions plus the CopyFile
// primitive. Concrete providers live in separate packages; the billy package
// supplies disk-backed and in-memory implementations over go-billy.
package core
