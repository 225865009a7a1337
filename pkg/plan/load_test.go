package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/types"
)

const tomlPlan = `
format = "1.0"
destination = "/venv/lib/python3.12/site-packages"

[[package]]
name = "idna"
version = "3.7"
source = "/cache/wheels/idna-3.7"

[[package]]
name = "requests"
version = "2.32.3"
source = "wheels/requests-2.32.3"
`

const yamlPlan = `
format: "1.2"
package:
  - name: idna
    version: "3.7"
    source: /cache/wheels/idna-3.7
`

func TestParseTOML(t *testing.T) {
	p, err := Parse([]byte(tomlPlan), SyntaxTOML, "/plans")
	require.NoError(t, err)

	assert.Equal(t, "1.0", p.Format)
	assert.Equal(t, "/venv/lib/python3.12/site-packages", p.Destination)
	require.Len(t, p.Packages, 2)
	assert.Equal(t, types.Identity{Name: "idna", Version: "3.7"}, p.Packages[0].Identity())
	assert.Equal(t, "/cache/wheels/idna-3.7", p.Packages[0].Source)
	assert.Equal(t, filepath.Join("/plans", "wheels/requests-2.32.3"), p.Packages[1].Source)
}

func TestParseYAML(t *testing.T) {
	p, err := Parse([]byte(yamlPlan), SyntaxYAML, "")
	require.NoError(t, err)

	assert.Equal(t, "1.2", p.Format)
	assert.Empty(t, p.Destination)
	require.Len(t, p.Packages, 1)
	assert.Equal(t, "idna", p.Packages[0].Name)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing format", `[[package]]
name = "idna"
version = "3.7"
source = "/w"`},
		{"missing source", `format = "1.0"
[[package]]
name = "idna"
version = "3.7"`},
		{"unknown key", `format = "1.0"
mirror = "https://example.com"`},
		{"bad name", `format = "1.0"
[[package]]
name = "-idna"
version = "3.7"
source = "/w"`},
		{"numeric format", `format = 1.0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), SyntaxTOML, "")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPlanInvalid), "got %v", err)

			issues, ok := errors.GetErrorDetails(err)["issues"].([]Issue)
			require.True(t, ok)
			assert.NotEmpty(t, issues)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("format = "), SyntaxTOML, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanParse))

	_, err = Parse([]byte("format: [unclosed"), SyntaxYAML, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanParse))
}

func TestParseFormatVersion(t *testing.T) {
	tests := []struct {
		format string
		ok     bool
	}{
		{"1", true},
		{"1.0", true},
		{"1.9.3", true},
		{"2.0", false},
		{"0.9", false},
		{"one", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := Parse([]byte(`format = "`+tt.format+`"`), SyntaxTOML, "")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorCode(err, errors.ErrPlanVersion), "got %v", err)
		})
	}
}

func TestParseRejectsDuplicatePackages(t *testing.T) {
	doc := `format = "1.0"
[[package]]
name = "idna"
version = "3.7"
source = "/a"
[[package]]
name = "idna"
version = "3.6"
source = "/b"`

	_, err := Parse([]byte(doc), SyntaxTOML, "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanInvalid))
	assert.Contains(t, err.Error(), "entries 1 and 2")
}

func TestLoadResolvesAgainstPlanDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlPlan), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wheels", "requests-2.32.3"), p.Packages[1].Source)
}

func TestLoadYAMLByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlPlan), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.2", p.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlanLoad))
}

func TestSyntaxFor(t *testing.T) {
	assert.Equal(t, SyntaxTOML, SyntaxFor("plan.toml"))
	assert.Equal(t, SyntaxYAML, SyntaxFor("plan.YAML"))
	assert.Equal(t, SyntaxYAML, SyntaxFor("plan.yml"))
	assert.Equal(t, SyntaxTOML, SyntaxFor("plan"))
}
