package linker

import (
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/wheelink/pkg/filesystem"
)

// macOS caches code signature validation per inode. A reflinked binary gets a
// fresh inode and is validated again on first execution, which is slow, so
// native binaries are hard linked instead when possible.

var preserveInodeExtensions = map[string]bool{
	".dylib": true,
	".so":    true,
}

var plainExtensions = map[string]bool{
	".py":  true,
	".pyc": true,
	".pyo": true,
	".pyd": true,
	".a":   true,
}

var machOMagics = [][]byte{
	{0xFE, 0xED, 0xFA, 0xCE}, // MH_MAGIC
	{0xCE, 0xFA, 0xED, 0xFE}, // MH_CIGAM
	{0xFE, 0xED, 0xFA, 0xCF}, // MH_MAGIC_64
	{0xCF, 0xFA, 0xED, 0xFE}, // MH_CIGAM_64
	{0xCA, 0xFE, 0xBA, 0xBE}, // FAT_MAGIC
	{0xBE, 0xBA, 0xFE, 0xCA}, // FAT_CIGAM
}

// IsPreserveInodeCandidate reports whether path looks like a native binary
// that should keep its inode: a .dylib or .so, or any other file that is not
// a known plain type and starts with a Mach-O magic number. Unreadable or
// short files are not candidates.
func IsPreserveInodeCandidate(fsys filesystem.FS, path string) bool {
	ext := filepath.Ext(path)
	if preserveInodeExtensions[ext] {
		return true
	}
	if plainExtensions[ext] {
		return false
	}

	header, err := fsys.ReadHeader(path, 4)
	if err != nil {
		return false
	}
	for _, magic := range machOMagics {
		if bytes.Equal(header, magic) {
			return true
		}
	}
	return false
}
