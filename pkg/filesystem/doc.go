// Package filesystem provides the filesystem capability used by the linker.
//
// FS covers the ordinary operations (stat, walk, copy, rename) plus the
// accelerated placement primitives: hard links, symbolic links and
// copy-on-write reflinks. Platforms that can clone a whole directory tree in
// one call additionally implement TreeCloner.
//
// Two implementations exist: NewOS, backed by the real filesystem with one
// reflink implementation per operating system family, and NewMemFS, an
// in-memory filesystem for tests where each capability can be switched off to
// simulate filesystems that reject it.
package filesystem
