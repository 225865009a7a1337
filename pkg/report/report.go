// Package report describes the outcome of an installation session and
// renders it for people and machines.
package report

import (
	"time"

	"github.com/arthur-debert/wheelink/pkg/diagnostics"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// Report summarizes one installation session.
type Report struct {
	Destination string
	Mode        types.LinkMode
	Packages    []Package
	Warnings    []diagnostics.Warning
	Duration    time.Duration
	// Err is the error that stopped the session, if any.
	Err error
}

// Package is the outcome of linking one package.
type Package struct {
	types.Identity
	Source   string
	Files    int
	Duration time.Duration
	Err      error
}

// Succeeded reports whether the package was placed completely.
func (p Package) Succeeded() bool {
	return p.Err == nil
}

// TotalFiles returns the number of files placed across all packages.
func (r *Report) TotalFiles() int {
	total := 0
	for _, p := range r.Packages {
		total += p.Files
	}
	return total
}

// Failed returns the packages that did not complete.
func (r *Report) Failed() []Package {
	var failed []Package
	for _, p := range r.Packages {
		if !p.Succeeded() {
			failed = append(failed, p)
		}
	}
	return failed
}
