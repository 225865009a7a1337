package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/wheelink/pkg/filesystem"
)

func TestIsPreserveInodeCandidate(t *testing.T) {
	fsys := filesystem.NewMemFS()
	machO := []byte{0xCF, 0xFA, 0xED, 0xFE, 0x07, 0x00}
	fat := []byte{0xCA, 0xFE, 0xBA, 0xBE}

	files := map[string][]byte{
		"/w/libfoo.dylib":                    []byte("x"),
		"/w/_speedups.cpython-312-darwin.so": []byte("x"),
		"/w/bin/tool":                        machO,
		"/w/bin/universal":                   fat,
		"/w/bin/script":                      []byte("#!/usr/bin/env python\n"),
		"/w/bin/short":                       []byte("ab"),
		"/w/mod.py":                          machO,
		"/w/mod.pyc":                         machO,
		"/w/libstatic.a":                     machO,
		"/w/libfoo.so.1":                     machO,
		"/w/data.txt":                        []byte("plain text"),
	}
	for path, data := range files {
		require.NoError(t, fsys.WriteFile(path, data, 0o755))
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/w/libfoo.dylib", true},
		{"/w/_speedups.cpython-312-darwin.so", true},
		{"/w/bin/tool", true},
		{"/w/bin/universal", true},
		{"/w/bin/script", false},
		{"/w/bin/short", false},
		{"/w/mod.py", false},
		{"/w/mod.pyc", false},
		{"/w/libstatic.a", false},
		{"/w/libfoo.so.1", true},
		{"/w/data.txt", false},
		{"/w/missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPreserveInodeCandidate(fsys, tt.path))
		})
	}
}
