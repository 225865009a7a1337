package diagnostics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectorDeduplicatesByKey(t *testing.T) {
	var delivered []Warning
	c := NewCollector(WithSink(func(w Warning) { delivered = append(delivered, w) }))

	assert.True(t, c.Warn("fallback:hardlink", "first"))
	assert.False(t, c.Warn("fallback:hardlink", "second"))
	assert.True(t, c.Warn("module-conflict:pkg", "conflict"))

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, []Warning{
		{Key: "fallback:hardlink", Message: "first"},
		{Key: "module-conflict:pkg", Message: "conflict"},
	}, c.Warnings())
	assert.Equal(t, c.Warnings(), delivered)
}

func TestDisabledCollector(t *testing.T) {
	c := NewCollector(Disabled())
	assert.False(t, c.Enabled())
	assert.False(t, c.Warn("k", "m"))
	assert.Zero(t, c.Count())
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.False(t, c.Warn("k", "m"))
	assert.Nil(t, c.Warnings())
	assert.Zero(t, c.Count())
	assert.False(t, c.Enabled())
}

func TestCollectorConcurrentWarn(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Warn(fmt.Sprintf("key-%d", i%4), "message")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, c.Count())
}
