// Package types defines the small value types shared across wheelink.
// This includes the LinkMode strategy selector, the Identity of an installed
// package, and the Preview feature set that gates opt-in diagnostics.
package types
