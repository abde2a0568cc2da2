package navigator

import "context"

// Completion signals the end of an accepted render.
type Completion struct {
	done chan struct{}
	err  error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func (c *Completion) finish(err error) {
	c.err = err
	close(c.done)
}

// Done is closed once the render has finished, successfully or not.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Err blocks until the render finishes and returns its error.
func (c *Completion) Err() error {
	<-c.done
	return c.err
}

// Wait blocks until the render finishes or ctx is done. Giving up on the
// wait does not stop the render.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
