package report

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/wheelink/pkg/diagnostics"
	"github.com/arthur-debert/wheelink/pkg/types"
	"github.com/arthur-debert/wheelink/pkg/ui"
)

func sampleReport() *Report {
	return &Report{
		Destination: "/venv/site-packages",
		Mode:        types.LinkModeHardlink,
		Duration:    1500 * time.Millisecond,
		Packages: []Package{
			{
				Identity: types.Identity{Name: "idna", Version: "3.7"},
				Source:   "/cache/idna",
				Files:    12,
				Duration: 20 * time.Millisecond,
			},
			{
				Identity: types.Identity{Name: "six", Version: "1.16.0"},
				Source:   "/cache/six",
				Files:    1,
				Duration: 3 * time.Millisecond,
				Err:      stderrors.New("disk on fire"),
			},
		},
		Warnings: []diagnostics.Warning{
			{Key: "fallback:hardlink", Message: "Failed to hardlink files; falling back to full copy."},
		},
		Err: stderrors.New("disk on fire"),
	}
}

func TestReportTotals(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, 13, r.TotalFiles())
	require.Len(t, r.Failed(), 1)
	assert.Equal(t, "six", r.Failed()[0].Name)
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), ui.FormatText))

	out := buf.String()
	assert.Contains(t, out, "✓ idna==3.7 (12 files, 20ms)")
	assert.Contains(t, out, "✗ six==1.16.0 (1 files, 3ms)")
	assert.Contains(t, out, "disk on fire")
	assert.Contains(t, out, "! Failed to hardlink files")
	assert.Contains(t, out, "Partially installed 1 packages (13 files) into /venv/site-packages with hardlink in 1.5s")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), ui.FormatJSON))

	var decoded jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "hardlink", decoded.Mode)
	assert.Equal(t, 13, decoded.Files)
	assert.Equal(t, int64(1500), decoded.DurationMS)
	require.Len(t, decoded.Packages, 2)
	assert.Empty(t, decoded.Packages[0].Error)
	assert.Equal(t, "disk on fire", decoded.Packages[1].Error)
	require.Len(t, decoded.Warnings, 1)
	assert.Equal(t, "fallback:hardlink", decoded.Warnings[0].Key)
}

func TestRenderJSONEmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &Report{Destination: "/d"}, ui.FormatJSON))

	assert.Contains(t, buf.String(), `"packages": []`)
	assert.Contains(t, buf.String(), `"warnings": []`)
}

func TestRenderXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), ui.FormatXML))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("install")
	require.NotNil(t, root)
	assert.Equal(t, "hardlink", root.SelectAttrValue("mode", ""))
	assert.Equal(t, "13", root.SelectAttrValue("files", ""))

	pkgs := root.FindElements("./packages/package")
	require.Len(t, pkgs, 2)
	assert.Equal(t, "idna", pkgs[0].SelectAttrValue("name", ""))
	assert.Equal(t, "/cache/idna", pkgs[0].SelectElement("source").Text())
	assert.Nil(t, pkgs[0].SelectElement("error"))
	assert.Equal(t, "disk on fire", pkgs[1].SelectElement("error").Text())

	warning := root.FindElement("./warnings/warning")
	require.NotNil(t, warning)
	assert.Equal(t, "fallback:hardlink", warning.SelectAttrValue("key", ""))
}

func TestRenderUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, sampleReport(), ui.Format(99))
	assert.Error(t, err)
}
