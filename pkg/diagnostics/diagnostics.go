// Package diagnostics collects user-facing warnings for one installation
// session. Each warning is keyed by its cause and emitted at most once.
package diagnostics

import "sync"

// Warning is a user-facing, non-fatal diagnostic.
type Warning struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Sink receives each warning the first time it is emitted.
type Sink func(Warning)

// Collector deduplicates warnings by key. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	enabled  bool
	seen     map[string]bool
	warnings []Warning
	sink     Sink
}

// Option configures a Collector.
type Option func(*Collector)

// WithSink forwards newly emitted warnings to sink.
func WithSink(sink Sink) Option {
	return func(c *Collector) { c.sink = sink }
}

// Disabled creates a collector that records nothing.
func Disabled() Option {
	return func(c *Collector) { c.enabled = false }
}

// NewCollector creates an enabled collector.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		enabled: true,
		seen:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Warn records message under key unless the key was already used. It reports
// whether the warning was emitted.
func (c *Collector) Warn(key, message string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	if !c.enabled || c.seen[key] {
		c.mu.Unlock()
		return false
	}
	c.seen[key] = true
	w := Warning{Key: key, Message: message}
	c.warnings = append(c.warnings, w)
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink(w)
	}
	return true
}

// Warnings returns the emitted warnings in emission order.
func (c *Collector) Warnings() []Warning {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Count returns how many warnings were emitted.
func (c *Collector) Count() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// Enabled reports whether the collector records warnings.
func (c *Collector) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}
