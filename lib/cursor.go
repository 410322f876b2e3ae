package lib

// source is the pull side of a cursor. ok is false once the sequence is
// exhausted.
type source[T any] interface {
	read() (item T, ok bool, err error)
}

// cursor wraps a source with single-item peek and an unbounded pushback
// stack. Once the source reports exhaustion (or fails) it is never read
// again: every later pull yields the end marker (or the same error).
type cursor[T any] struct {
	src    source[T]
	end    T
	pushed []T
	ended  bool
	err    error
}

func newCursor[T any](src source[T], end T) *cursor[T] {
	return &cursor[T]{
		src:    src,
		end:    end,
		pushed: []T{},
	}
}

func (c *cursor[T]) pull() (T, error) {
	if c.err != nil {
		return c.end, c.err
	}
	if c.ended {
		return c.end, nil
	}
	item, ok, err := c.src.read()
	if err != nil {
		c.err = err
		return c.end, err
	}
	if !ok {
		c.ended = true
		return c.end, nil
	}
	return item, nil
}

func (c *cursor[T]) Next() (T, error) {
	if n := len(c.pushed); n > 0 {
		item := c.pushed[n-1]
		c.pushed = c.pushed[:n-1]
		return item, nil
	}
	return c.pull()
}

func (c *cursor[T]) Peek() (T, error) {
	if n := len(c.pushed); n > 0 {
		return c.pushed[n-1], nil
	}
	item, err := c.pull()
	if err != nil || c.ended {
		return item, err
	}
	c.pushed = append(c.pushed, item)
	return item, nil
}

// PushBack makes item the next value returned by Next or Peek. Items
// pushed back in sequence are replayed last-in first-out.
func (c *cursor[T]) PushBack(item T) {
	c.pushed = append(c.pushed, item)
}

// HasNext is false once the source has been exhausted and nothing
// remains pushed back. It does not pull from the source.
func (c *cursor[T]) HasNext() bool {
	return !((c.ended || c.err != nil) && len(c.pushed) == 0)
}
