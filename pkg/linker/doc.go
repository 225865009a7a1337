// Package linker places the files of an unpacked wheel into an installation
// directory.
//
// # Link modes
//
// A LinkMode picks the placement operation: clone (copy-on-write), hardlink,
// symlink or copy. Accelerated modes may not work for a given source and
// destination pair, and there is no way to know ahead of time, so every
// package extraction probes the operation on its first file:
//
//   - Initial: nothing probed yet. Success moves to Subsequent, failure to
//     UseCopyFallback and the failed file is copied instead.
//   - Subsequent: the operation is known to work. Any failure is a real
//     environment fault and is returned to the caller.
//   - UseCopyFallback: the operation is known not to work. Every remaining
//     file of the package is copied and one warning is emitted.
//
// An existing destination never counts as a failure of the operation: the
// file is placed under a temporary name next to the destination and renamed
// over it, so the destination is never briefly missing.
//
// # Synchronized copy
//
// Every copy, whether chosen or fallen back to, holds a mutex keyed by the
// destination's parent directory. Packages that share a directory (namespace
// packages) therefore never interleave writes to the same file.
//
// # Sessions
//
// Locks is shared by every package installed in one session and may be used
// from many goroutines. It owns the directory locks and the registry of top
// level modules used to warn about packages that overwrite each other.
//
// Extraction is not transactional: an error part way through leaves a
// partially populated destination. Callers that need atomicity install into a
// staging directory and rename it into place.
package linker
