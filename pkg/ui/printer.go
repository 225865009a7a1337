package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/wheelink/pkg/diagnostics"
)

// Printer writes interactive feedback (warnings and progress) while an
// install runs. Plain printers write unstyled lines and no progress bar.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	styled bool
}

// NewPrinter creates a printer for out. Styling and the progress bar are
// only used when format is FormatTerminal.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, styled: format == FormatTerminal}
}

// Warn prints a warning.
func (p *Printer) Warn(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.styled {
		pterm.Warning.WithWriter(p.out).Println(message)
		return
	}
	_, _ = fmt.Fprintf(p.out, "warning: %s\n", message)
}

// Error prints an error.
func (p *Printer) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.styled {
		pterm.Error.WithWriter(p.out).Println(err.Error())
		return
	}
	_, _ = fmt.Fprintf(p.out, "error: %s\n", err)
}

// WarningSink adapts the printer to a diagnostics collector.
func (p *Printer) WarningSink() diagnostics.Sink {
	return func(w diagnostics.Warning) { p.Warn(w.Message) }
}

// Progress tracks completed packages.
type Progress struct {
	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// StartProgress starts a progress bar over total steps. It returns a no-op
// Progress when the printer is not styled or there is nothing to track.
func (p *Printer) StartProgress(title string, total int) *Progress {
	if !p.styled || total == 0 {
		return &Progress{}
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithWriter(p.out).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return &Progress{}
	}
	return &Progress{bar: bar}
}

// Step advances the bar by one and shows message as its title.
func (pr *Progress) Step(message string) {
	if pr == nil || pr.bar == nil {
		return
	}
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.bar.UpdateTitle(message)
	pr.bar.Increment()
}

// Stop removes the bar.
func (pr *Progress) Stop() {
	if pr == nil || pr.bar == nil {
		return
	}
	pr.mu.Lock()
	defer pr.mu.Unlock()
	_, _ = pr.bar.Stop()
}
