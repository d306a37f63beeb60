package ledger

import "sync"

// Subscription receives the source identity of every ledger that
// changes after the subscription is created. The channel is buffered;
// a subscriber that falls behind drops notifications rather than
// blocking the writer.
type Subscription struct {
	C  <-chan string
	id int
	ch chan string
}

// Registry is an explicit subscriber registry for ledger change
// notifications. All state lives inside the registry instance; there is
// no process-global subscriber set.
type Registry struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[int]chan string)}
}

// Subscribe registers a new subscriber and returns its subscription.
func (r *Registry) Subscribe() *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan string, 16)
	r.nextID++
	r.subs[r.nextID] = ch
	return &Subscription{C: ch, id: r.nextID, ch: ch}
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// more than once.
func (r *Registry) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[sub.id]; ok {
		delete(r.subs, sub.id)
		close(sub.ch)
	}
}

// Notify tells every subscriber that the ledger for the given source
// changed. Never blocks: slow subscribers miss the notification.
func (r *Registry) Notify(sourceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- sourceID:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
