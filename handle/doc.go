// Package handle provides typed handles over filesystem paths (File for
// regular files, Folder for directories) plus the recursive tree
// operations built on them: delete, copy, move, search, and content
// comparison. Handles operate against any core.FS provider, so the same code
// runs on disk or in memory.
//
// # Validity
//
// A handle passes through the states Uninitialized, Valid, and Invalid. A
// successful OpenFile/OpenFolder yields a Valid handle; Delete, and the
// source side of a completed move, invalidate it. There is no way back to
// Valid. Every operation other than open/create fails with
// errors.CodeInvalidState on an Invalid handle. A moved handle transitions
// to its destination path and stays Valid.
//
// # Metadata
//
// Handles cache nothing: Stat, Size, ModTime, and the enumeration methods
// re-query the provider on every call. Two traversals of the same Folder are
// independent and each observes the live directory state.
//
// # Enumeration
//
// Files, Subfolders, and Entries return freshly scanned slices sorted
// lexicographically by name, guaranteeing deterministic traversal order
// across runs and platforms. Kind classification follows symbolic links, so
// a link to a directory enumerates as a Folder.
//
// # Matching
//
// Find and Grep take an explicit MatchMode rather than guessing the query's
// intent: MatchLiteral is substring containment, MatchPattern is an
// unanchored regular expression. Both apply identically wherever a query is
// accepted.
//
// # Failure policy
//
// Validation errors (CodeInvalidArgument, CodeWrongKind) are raised before
// any I/O. Recursive operations are best-effort: work completed on earlier
// siblings is not rolled back when a later sibling fails, and the partial
// result collected so far is returned alongside the error. The one
// exception is the cross-boundary move fallback, which removes its partial
// destination copy when the source delete fails. A file found already
// absent during delete is treated as success, tolerating benign races.
package handle
