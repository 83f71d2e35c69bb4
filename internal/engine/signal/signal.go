// Package signal implements typed notification lists for engine events.
//
// Signals are used from the main thread only and are not safe for concurrent
// use.
package signal

// ID identifies a subscription so it can be removed later.
type ID int

type subscriber[T any] struct {
	id ID
	fn func(T)
}

// Signal is an ordered list of callbacks receiving a value of type T.
type Signal[T any] struct {
	next ID
	subs []subscriber[T]
}

// Subscribe adds fn and returns its subscription id.
func (s *Signal[T]) Subscribe(fn func(T)) ID {
	s.next++
	s.subs = append(s.subs, subscriber[T]{id: s.next, fn: fn})
	return s.next
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (s *Signal[T]) Unsubscribe(id ID) {
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every subscriber in subscription order. Subscribers may
// unsubscribe (themselves or others) while being notified; the change takes
// effect on the next Emit.
func (s *Signal[T]) Emit(v T) {
	subs := s.subs
	for _, sub := range subs {
		sub.fn(v)
	}
}

// Len returns the number of subscribers.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}
