// Package study puts the four study stores of one identity behind a single session.
package study

import (
	"context"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/dashboard"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/homework"
	"github.com/trezcool/phoebuz/core/session"
	"github.com/trezcool/phoebuz/core/timetable"
)

// Repositories are the row store tables the stores mirror.
type Repositories struct {
	Homework  homework.Repository
	Calendar  calendar.Repository
	Grades    grade.Repository
	Timetable timetable.Repository
}

// InitValidators registers the custom validations of every study form on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.InitValidators(validate, translator)
	homework.InitValidators(validate, translator)
	calendar.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	timetable.InitValidators(validate, translator)
}

// Workspace is what a signed in student works with: one session and the stores following it.
type Workspace struct {
	Session   *session.Session
	Homework  *homework.Store
	Calendar  *calendar.Store
	Grades    *grade.Store
	Timetable *timetable.Store

	openMu sync.Mutex
}

func NewWorkspace(repos Repositories, logger core.Logger) *Workspace {
	sess := session.New()
	return &Workspace{
		Session:   sess,
		Homework:  homework.NewStore(repos.Homework, sess, logger),
		Calendar:  calendar.NewStore(repos.Calendar, sess, logger),
		Grades:    grade.NewStore(repos.Grades, sess, logger),
		Timetable: timetable.NewStore(repos.Timetable, sess, logger),
	}
}

// Reload loads every store again. All stores are tried; the first error is returned.
func (w *Workspace) Reload(ctx context.Context) error {
	var first error
	for _, load := range []func(context.Context) error{
		w.Homework.Load,
		w.Calendar.Load,
		w.Grades.Load,
		w.Timetable.Load,
	} {
		if err := load(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LoadPending loads the stores that have not loaded since sign in. All of them are tried;
// the first error is returned.
func (w *Workspace) LoadPending(ctx context.Context) error {
	var first error
	for _, st := range []interface {
		Loaded() bool
		Load(context.Context) error
	}{w.Homework, w.Calendar, w.Grades, w.Timetable} {
		if st.Loaded() {
			continue
		}
		if err := st.Load(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (w *Workspace) Summary() dashboard.Summary {
	return dashboard.Summarize(w.Homework.Items(), w.Calendar.Items(), w.Grades.Items())
}

// Registry hands out one Workspace per identity.
type Registry struct {
	repos  Repositories
	logger core.Logger

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewRegistry(repos Repositories, logger core.Logger) *Registry {
	return &Registry{
		repos:      repos,
		logger:     logger,
		workspaces: make(map[string]*Workspace),
	}
}

// Open returns the workspace of id, signing id in (and so loading its data) the first time.
// Stores whose load failed are loaded again on the next Open; until then Open reports the
// failure. Concurrent calls for the same identity wait for each other.
func (r *Registry) Open(ctx context.Context, id session.Identity) (*Workspace, error) {
	if id.ID == "" {
		return nil, session.ErrNoIdentity
	}

	r.mu.Lock()
	ws, ok := r.workspaces[id.ID]
	if !ok {
		ws = NewWorkspace(r.repos, r.logger)
		r.workspaces[id.ID] = ws
	}
	r.mu.Unlock()

	ws.openMu.Lock()
	defer ws.openMu.Unlock()

	// signs in the first time, later only keeps the email current
	ws.Session.SetIdentity(ctx, id)
	if err := ws.LoadPending(ctx); err != nil {
		return nil, errors.Wrapf(err, "loading workspace of %s", id.ID)
	}
	return ws, nil
}

// Close signs userID out and forgets its workspace. Unknown identities are ignored.
func (r *Registry) Close(ctx context.Context, userID string) {
	r.mu.Lock()
	ws, ok := r.workspaces[userID]
	delete(r.workspaces, userID)
	r.mu.Unlock()

	if ok {
		ws.Session.SignOut(ctx)
	}
}

// Each calls fn for every open workspace.
func (r *Registry) Each(fn func(ws *Workspace)) {
	r.mu.Lock()
	all := make([]*Workspace, 0, len(r.workspaces))
	for _, ws := range r.workspaces {
		all = append(all, ws)
	}
	r.mu.Unlock()

	for _, ws := range all {
		fn(ws)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}
