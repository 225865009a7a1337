//go:build !linux && !darwin

package filesystem

func newOS() FS {
	return &osFS{aferoFS: baseOS()}
}

// Reflink is not implemented on this platform; callers fall back to copying.
func (o *osFS) Reflink(src, dst string) error {
	return linkError("reflink", src, dst, ErrUnsupported)
}
