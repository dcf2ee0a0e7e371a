package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := WithQuiet(context.Background())

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.True(t, isQuiet(ctx), "Goroutine %d: isQuiet should be true", id)
		}(i)
	}
	wg.Wait()
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	base := context.Background()
	quiet := WithQuiet(base)

	assert.False(t, isQuiet(base))
	assert.True(t, isQuiet(quiet))
	assert.False(t, isQuiet(context.WithValue(base, quietKey, "yes")))
}
