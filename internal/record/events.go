package record

import "sync"

type EventType int

const (
	EventInserted EventType = iota
	EventDeleted
)

// Event is published after a record has been inserted into or deleted from the store.
type Event struct {
	Type   EventType
	Record *Record
}

type subscribers struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(Event)
}

func (s *subscribers) add(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(Event))
	}

	id := s.nextID
	s.nextID++
	s.fns[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.fns, id)
	}
}

func (s *subscribers) publish(e Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
