package collection

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/session"
)

// loadAttempts bounds how many times Load queries again when writes keep landing
// while its query is in flight.
const loadAttempts = 3

// QueryFunc fetches every row of userID in display order.
type QueryFunc[T any] func(ctx context.Context, userID string) ([]T, error)

// Mirror keeps a List in step with the rows of the signed in identity.
//
// Writes are serialized: each one holds the write lock from its remote call until its
// result is applied, so the list sees them in the order the remote did. A Load whose
// query raced a write is discarded and queried again; a write confirming a row a Load
// already brought in replaces it instead of duplicating it. Results are applied only after
// the remote confirmed them and only if the session generation captured when the call
// started is still current. Remote failures are logged and returned, the list is left
// untouched.
type Mirror[T any] struct {
	name     string
	sess     *session.Session
	logger   core.Logger
	list     *List[T]
	query    QueryFunc[T]
	notFound error

	writeMu sync.Mutex
	loaded  atomic.Bool
}

// NewMirror returns a Mirror that reloads on sign in and empties itself on sign out.
// notFound, if not nil, is the error the remote reports for a row it does not have.
func NewMirror[T any](name string, sess *session.Session, logger core.Logger, key func(T) string, query QueryFunc[T], notFound error) *Mirror[T] {
	m := &Mirror[T]{
		name:     name,
		sess:     sess,
		logger:   logger,
		list:     New(key),
		query:    query,
		notFound: notFound,
	}
	sess.OnIdentityChange(m.onIdentityChange)
	return m
}

func (m *Mirror[T]) onIdentityChange(ctx context.Context, c session.Change) {
	m.loaded.Store(false)
	if err := m.list.Replace(m.sess.Guard(c.Generation), nil); err != nil {
		return
	}
	if c.Present {
		_ = m.Load(ctx) // logged
	}
}

func (m *Mirror[T]) Items() []T { return m.list.Items() }

func (m *Mirror[T]) Find(id string) (T, bool) { return m.list.Find(id) }

func (m *Mirror[T]) Len() int { return m.list.Len() }

// Loaded reports whether the rows of the current identity were loaded at least once.
func (m *Mirror[T]) Loaded() bool { return m.loaded.Load() }

// Session is the session the mirror follows.
func (m *Mirror[T]) Session() *session.Session { return m.sess }

func (m *Mirror[T]) begin() (session.Identity, Check, error) {
	id, gen, ok := m.sess.Current()
	if !ok {
		return id, nil, session.ErrNoIdentity
	}
	return id, m.sess.Guard(gen), nil
}

// fail wraps err. A missing row is routine (stale or foreign ids) and only warned about.
func (m *Mirror[T]) fail(op string, id session.Identity, err error) error {
	cause := errors.Cause(err)
	err = errors.Wrapf(err, "%s.%s", m.name, op)
	if m.notFound != nil && cause == m.notFound {
		m.logger.Warn(err.Error(), id)
		return err
	}
	m.logger.Error(err.Error(), err, id)
	return err
}

func (m *Mirror[T]) errNotFound(op string) error {
	if m.notFound != nil {
		return errors.Wrapf(m.notFound, "%s.%s", m.name, op)
	}
	return errors.Wrapf(ErrNotFound, "%s.%s", m.name, op)
}

// Load replaces the list with the remote rows. On failure the previous items are kept.
func (m *Mirror[T]) Load(ctx context.Context) error {
	id, guard, err := m.begin()
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		version := m.list.Version()
		items, err := m.query(ctx, id.ID)
		if err != nil {
			return m.fail("Load", id, err)
		}

		err = m.list.ReplaceAt(guard, version, items)
		switch {
		case err == nil:
			m.loaded.Store(true)
			return nil
		case err != ErrModified:
			return err
		case attempt == loadAttempts:
			return m.fail("Load", id, err)
		}
	}
}

// Add runs create and appends the row it echoes back.
func (m *Mirror[T]) Add(ctx context.Context, create func(ctx context.Context, userID string) (T, error)) (T, error) {
	var zero T
	id, guard, err := m.begin()
	if err != nil {
		return zero, err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	item, err := create(ctx, id.ID)
	if err != nil {
		return zero, m.fail("Add", id, err)
	}
	if err := m.list.Append(guard, item); err != nil {
		return zero, err
	}
	return item, nil
}

// Update runs update for row id and, once confirmed, applies merge to the local copy.
func (m *Mirror[T]) Update(ctx context.Context, id string, update func(ctx context.Context, userID string) error, merge func(*T)) (T, error) {
	var zero T
	ident, guard, err := m.begin()
	if err != nil {
		return zero, err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.update(ctx, ident, guard, id, update, merge)
}

// UpdateCurrent is Update for changes computed from the current row: prepare gets the
// local copy (reloaded first when missing here) and returns the update and merge to run.
func (m *Mirror[T]) UpdateCurrent(
	ctx context.Context,
	id string,
	prepare func(cur T) (update func(ctx context.Context, userID string) error, merge func(*T), err error),
) (T, error) {
	var zero T
	ident, guard, err := m.begin()
	if err != nil {
		return zero, err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	cur, ok := m.list.Find(id)
	if !ok {
		m.logger.Warn(fmt.Sprintf("%s.Update: %s missing locally, reloading", m.name, id), ident)
		if err := m.Load(ctx); err != nil {
			return zero, err
		}
		if cur, ok = m.list.Find(id); !ok {
			return zero, m.errNotFound("Update")
		}
	}

	update, merge, err := prepare(cur)
	if err != nil {
		return zero, err
	}
	return m.update(ctx, ident, guard, id, update, merge)
}

// update runs under writeMu.
func (m *Mirror[T]) update(ctx context.Context, ident session.Identity, guard Check, id string, update func(ctx context.Context, userID string) error, merge func(*T)) (T, error) {
	var zero T
	if err := update(ctx, ident.ID); err != nil {
		return zero, m.fail("Update", ident, err)
	}

	item, err := m.list.Patch(guard, id, merge)
	if errors.Cause(err) != ErrNotFound {
		return item, err
	}

	// the row exists remotely but not here: resync
	m.logger.Warn(fmt.Sprintf("%s.Update: %s missing locally, reloading", m.name, id), ident)
	if err := m.Load(ctx); err != nil {
		return zero, err
	}
	if item, ok := m.list.Find(id); ok {
		return item, nil
	}
	return zero, m.errNotFound("Update")
}

// Delete runs del for row id and, once confirmed, removes the local copy.
func (m *Mirror[T]) Delete(ctx context.Context, id string, del func(ctx context.Context, userID string) error) error {
	ident, guard, err := m.begin()
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := del(ctx, ident.ID); err != nil {
		return m.fail("Delete", ident, err)
	}
	return m.list.Remove(guard, id)
}

// Swap runs replace and, once confirmed, makes items the whole content of the list.
func (m *Mirror[T]) Swap(ctx context.Context, replace func(ctx context.Context, userID string) error, items []T) error {
	ident, guard, err := m.begin()
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := replace(ctx, ident.ID); err != nil {
		return m.fail("Replace", ident, err)
	}
	return m.list.Replace(guard, items)
}
