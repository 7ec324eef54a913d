package srv

import (
	"context"
	"fmt"
	"sync"
)

// closer adapts a resource's Close to the Service lifecycle so it can be
// released in the same shutdown pass as the transports.
type closer struct {
	name  string
	close func() error
	once  sync.Once
	err   error
}

// NewCleanup wraps fn as a Service that does nothing on Start and runs fn at
// most once on Shutdown.
func NewCleanup(name string, fn func() error) Service {
	return &closer{name: name, close: fn}
}

func (c *closer) Start(context.Context) error {
	return nil
}

func (c *closer) Shutdown(context.Context) error {
	c.once.Do(func() {
		if c.close == nil {
			return
		}
		if err := c.close(); err != nil {
			c.err = fmt.Errorf("close %s: %w", c.name, err)
		}
	})
	return c.err
}
