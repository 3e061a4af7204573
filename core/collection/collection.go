// Package collection provides the ordered in-memory lists the study stores mirror
// their remote tables into.
package collection

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("item not in collection")
	ErrModified = errors.New("collection changed since the given version")
)

// Check is evaluated under the list lock before a mutation is applied.
// A non-nil error aborts the mutation and is returned as is.
type Check func() error

// List is an ordered collection of items identified by key. Safe for concurrent use.
// Every mutation bumps the version.
type List[T any] struct {
	mu      sync.RWMutex
	items   []T
	key     func(T) string
	version uint64
}

func New[T any](key func(T) string) *List[T] {
	return &List[T]{key: key}
}

// Items returns a copy of the items in order.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]T, len(l.items))
	copy(items, l.items)
	return items
}

func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List[T]) Find(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

func (l *List[T]) index(id string) int {
	for i, item := range l.items {
		if l.key(item) == id {
			return i
		}
	}
	return -1
}

func (l *List[T]) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Replace swaps the whole content for items.
func (l *List[T]) Replace(check Check, items []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := run(check); err != nil {
		return err
	}
	l.replace(items)
	return nil
}

// ReplaceAt is Replace failing with ErrModified when the list changed after version.
func (l *List[T]) ReplaceAt(check Check, version uint64, items []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := run(check); err != nil {
		return err
	}
	if l.version != version {
		return ErrModified
	}
	l.replace(items)
	return nil
}

func (l *List[T]) replace(items []T) {
	l.items = make([]T, len(items))
	copy(l.items, items)
	l.version++
}

// Append adds item at the end. An item with the same key is replaced in place instead.
func (l *List[T]) Append(check Check, item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := run(check); err != nil {
		return err
	}
	if i := l.index(l.key(item)); i >= 0 {
		l.items[i] = item
	} else {
		l.items = append(l.items, item)
	}
	l.version++
	return nil
}

// Patch applies fn to the item with the given id and returns the patched copy.
func (l *List[T]) Patch(check Check, id string, fn func(*T)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if err := run(check); err != nil {
		return zero, err
	}
	i := l.index(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	fn(&l.items[i])
	l.version++
	return l.items[i], nil
}

// Remove drops the item with the given id. Removing a missing item is not an error.
func (l *List[T]) Remove(check Check, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := run(check); err != nil {
		return err
	}
	if i := l.index(id); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
		l.version++
	}
	return nil
}

func run(check Check) error {
	if check == nil {
		return nil
	}
	return check()
}
