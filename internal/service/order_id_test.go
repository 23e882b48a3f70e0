package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockOrderIDs_Format(t *testing.T) {
	g := NewClockOrderIDs()
	g.now = func() time.Time { return time.UnixMicro(1_700_000_000_123_456) }

	id := g.NewOrderID()

	assert.Equal(t, "order_6553f1001e240", id)
	assert.Len(t, id, len("order_")+13)
}

func TestClockOrderIDs_SameInstantStillUnique(t *testing.T) {
	g := NewClockOrderIDs()
	frozen := time.UnixMicro(1_700_000_000_000_000)
	g.now = func() time.Time { return frozen }

	first := g.NewOrderID()
	second := g.NewOrderID()

	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
}

func TestClockOrderIDs_ConcurrentCallsUnique(t *testing.T) {
	g := NewClockOrderIDs()
	const n = 500
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.NewOrderID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		assert.True(t, strings.HasPrefix(id, OrderIDPrefix))
		_, dup := seen[id]
		assert.False(t, dup, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}
