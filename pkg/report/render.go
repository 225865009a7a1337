package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/ui"
)

// Render writes r to w in format. FormatAuto renders plain text.
func Render(w io.Writer, r *Report, format ui.Format) error {
	switch format {
	case ui.FormatTerminal:
		return renderText(w, r, true)
	case ui.FormatText, ui.FormatAuto:
		return renderText(w, r, false)
	case ui.FormatJSON:
		return renderJSON(w, r)
	case ui.FormatXML:
		return renderXML(w, r)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported report format %s", format)
	}
}

func renderText(w io.Writer, r *Report, styled bool) error {
	paint := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder
	for _, p := range r.Packages {
		mark := paint(ui.SuccessStyle, ui.SuccessMark)
		if !p.Succeeded() {
			mark = paint(ui.ErrorStyle, ui.ErrorMark)
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, p.Identity.String(),
			paint(ui.MutedStyle, fmt.Sprintf("(%d files, %s)", p.Files, p.Duration.Round(time.Millisecond))))
		if p.Err != nil {
			b.WriteString(ui.Indent(paint(ui.ErrorStyle, p.Err.Error()), 1) + "\n")
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(&b, "%s %s\n", paint(ui.WarningStyle, ui.WarningMark), warning.Message)
	}

	summary := fmt.Sprintf("%s %s packages (%s files) into %s with %s in %s",
		verb(r),
		paint(ui.CountStyle, strconv.Itoa(len(r.Packages)-len(r.Failed()))),
		paint(ui.CountStyle, strconv.Itoa(r.TotalFiles())),
		paint(ui.PathStyle, r.Destination),
		paint(ui.ModeStyle(r.Mode.String()), r.Mode.String()),
		r.Duration.Round(time.Millisecond),
	)
	b.WriteString(paint(ui.TitleStyle, summary) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func verb(r *Report) string {
	if r.Err != nil {
		return "Partially installed"
	}
	return "Installed"
}

type jsonPackage struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Source     string `json:"source"`
	Files      int    `json:"files"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type jsonWarning struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type jsonReport struct {
	Destination string        `json:"destination"`
	Mode        string        `json:"mode"`
	Files       int           `json:"files"`
	DurationMS  int64         `json:"duration_ms"`
	Packages    []jsonPackage `json:"packages"`
	Warnings    []jsonWarning `json:"warnings"`
	Error       string        `json:"error,omitempty"`
}

func renderJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		Destination: r.Destination,
		Mode:        r.Mode.String(),
		Files:       r.TotalFiles(),
		DurationMS:  r.Duration.Milliseconds(),
		Packages:    make([]jsonPackage, 0, len(r.Packages)),
		Warnings:    make([]jsonWarning, 0, len(r.Warnings)),
		Error:       errorString(r.Err),
	}
	for _, p := range r.Packages {
		out.Packages = append(out.Packages, jsonPackage{
			Name:       p.Name,
			Version:    p.Version,
			Source:     p.Source,
			Files:      p.Files,
			DurationMS: p.Duration.Milliseconds(),
			Error:      errorString(p.Err),
		})
	}
	for _, warning := range r.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning(warning))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderXML(w io.Writer, r *Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("install")
	root.CreateAttr("destination", r.Destination)
	root.CreateAttr("mode", r.Mode.String())
	root.CreateAttr("files", strconv.Itoa(r.TotalFiles()))
	root.CreateAttr("duration-ms", strconv.FormatInt(r.Duration.Milliseconds(), 10))
	if r.Err != nil {
		root.CreateElement("error").SetText(r.Err.Error())
	}

	packages := root.CreateElement("packages")
	for _, p := range r.Packages {
		el := packages.CreateElement("package")
		el.CreateAttr("name", p.Name)
		el.CreateAttr("version", p.Version)
		el.CreateAttr("files", strconv.Itoa(p.Files))
		el.CreateAttr("duration-ms", strconv.FormatInt(p.Duration.Milliseconds(), 10))
		el.CreateElement("source").SetText(p.Source)
		if p.Err != nil {
			el.CreateElement("error").SetText(p.Err.Error())
		}
	}

	warnings := root.CreateElement("warnings")
	for _, warning := range r.Warnings {
		el := warnings.CreateElement("warning")
		el.CreateAttr("key", warning.Key)
		el.SetText(warning.Message)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
