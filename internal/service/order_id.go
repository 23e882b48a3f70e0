package service

import (
	"fmt"
	"sync"
	"time"
)

const OrderIDPrefix = "order_"

// ClockOrderIDs derives order ids from the wall clock in microseconds: 8 hex digits of
// seconds followed by 5 of microseconds. Ids are strictly increasing, so two calls in the
// same microsecond still differ.
type ClockOrderIDs struct {
	Prefix string

	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClockOrderIDs() *ClockOrderIDs {
	return &ClockOrderIDs{Prefix: OrderIDPrefix, now: time.Now}
}

func (g *ClockOrderIDs) NewOrderID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	micros := g.now().UnixMicro()
	if micros <= g.last {
		micros = g.last + 1
	}
	g.last = micros

	return fmt.Sprintf("%s%08x%05x", g.Prefix, micros/1_000_000, micros%1_000_000)
}
