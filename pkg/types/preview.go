package types

import (
	"fmt"
	"sort"
	"strings"
)

// PreviewFeature is an opt-in behavior that is not enabled by default.
type PreviewFeature string

const (
	// PreviewDetectModuleConflicts warns when two packages provide the same top-level module.
	PreviewDetectModuleConflicts PreviewFeature = "detect-module-conflicts"
)

var knownPreviewFeatures = map[PreviewFeature]bool{
	PreviewDetectModuleConflicts: true,
}

// Preview is the set of enabled preview features.
type Preview struct {
	features map[PreviewFeature]bool
}

// NewPreview enables the given features.
func NewPreview(features ...PreviewFeature) Preview {
	p := Preview{features: make(map[PreviewFeature]bool, len(features))}
	for _, f := range features {
		p.features[f] = true
	}
	return p
}

// ParsePreview builds a Preview from feature names, rejecting unknown ones.
func ParsePreview(names []string) (Preview, error) {
	var features []PreviewFeature
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f := PreviewFeature(name)
		if !knownPreviewFeatures[f] {
			return Preview{}, fmt.Errorf("unknown preview feature %q", name)
		}
		features = append(features, f)
	}
	return NewPreview(features...), nil
}

// IsEnabled reports whether the feature is enabled.
func (p Preview) IsEnabled(f PreviewFeature) bool {
	return p.features[f]
}

// Features returns the enabled features sorted by name.
func (p Preview) Features() []PreviewFeature {
	out := make([]PreviewFeature, 0, len(p.features))
	for f, on := range p.features {
		if on {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
