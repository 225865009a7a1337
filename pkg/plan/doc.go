// Package plan reads install plans.
//
// An install plan is the hand-off from resolution and unpacking to linking:
// an ordered list of packages, each naming the directory its wheel was
// unpacked into. Plans are TOML, or YAML when the file ends in .yaml or .yml,
// and are validated against an embedded JSON schema before use.
package plan
