package plan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/logging"
)

// Syntax is the serialization of a plan document.
type Syntax string

const (
	SyntaxTOML Syntax = "toml"
	SyntaxYAML Syntax = "yaml"
)

// SyntaxFor picks the syntax from a file extension.
func SyntaxFor(path string) Syntax {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SyntaxYAML
	default:
		return SyntaxTOML
	}
}

// Load reads, validates and resolves the plan at path.
func Load(path string) (*Plan, error) {
	logger := logging.GetLogger("plan")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlanLoad, "failed to read plan %s", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlanLoad, "failed to resolve plan path %s", path)
	}
	p, err := Parse(data, SyntaxFor(path), filepath.Dir(abs))
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("packages", len(p.Packages)).
		Msg("Loaded install plan")
	return p, nil
}

// Parse decodes and validates a plan document. Relative package sources are
// resolved against baseDir unless it is empty.
func Parse(data []byte, syntax Syntax, baseDir string) (*Plan, error) {
	var raw map[string]interface{}
	if err := unmarshal(data, syntax, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlanParse, "failed to parse %s plan", syntax)
	}

	issues, err := validate(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to validate plan")
	}
	if len(issues) > 0 {
		return nil, invalidPlan(issues)
	}

	var p Plan
	if err := unmarshal(data, syntax, &p); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlanParse, "failed to decode %s plan", syntax)
	}
	if err := checkFormat(p.Format); err != nil {
		return nil, err
	}
	if err := checkPackages(p.Packages); err != nil {
		return nil, err
	}
	p.resolveSources(baseDir)
	return &p, nil
}

func unmarshal(data []byte, syntax Syntax, v interface{}) error {
	if syntax == SyntaxYAML {
		return yaml.Unmarshal(data, v)
	}
	return toml.Unmarshal(data, v)
}

func invalidPlan(issues []Issue) error {
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return errors.Newf(errors.ErrPlanInvalid, "invalid plan: %s", strings.Join(msgs, "; ")).
		WithDetail("issues", issues)
}
