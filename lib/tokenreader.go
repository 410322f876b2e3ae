package lib

type tokenReader interface {
	Next() (Token, error)
	Peek() (Token, error)
	PushBack(tok Token)
}

// sliceSource replays an already materialized sequence.
type sliceSource[T any] struct {
	items []T
	pos   int
}

func (s *sliceSource[T]) read() (T, bool, error) {
	var zero T
	if s.pos >= len(s.items) {
		return zero, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}
