package echoapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/collection"
	"github.com/trezcool/phoebuz/core/grading"
	"github.com/trezcool/phoebuz/core/homework"
	"github.com/trezcool/phoebuz/core/session"
	testutil "github.com/trezcool/phoebuz/tests"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

var _ core.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Fatal(string, ...interface{}) {}

func (l *recordingLogger) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func TestAppHTTPErrorHandler(t *testing.T) {
	_, translator := testutil.NewTranslatedValidator()

	tests := []struct {
		name         string
		err          error
		method       string
		wantCode     int
		wantBody     string
		wantLogged   bool
		wantShutdown bool
	}{
		{
			name:     "not found",
			err:      errors.Wrap(homework.ErrNotFound, "retrieving homework"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"homework not found"}`,
		},
		{
			name:     "no identity",
			err:      session.ErrNoIdentity,
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"no signed in identity"}`,
		},
		{
			name:     "stale response",
			err:      errors.Wrap(session.ErrStale, "reloading"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "busy collection",
			err:      errors.Wrap(collection.ErrModified, "homework.Store.Load"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"collection changed since the given version"}`,
		},
		{
			name:     "invalid max marks",
			err:      grading.ErrInvalidMaxMarks,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "field errors",
			err:      core.NewValidationError(nil, core.FieldError{Field: "subject", Error: "unknown subject"}),
			wantCode: http.StatusBadRequest,
			wantBody: `{"subject":"unknown subject"}`,
		},
		{
			name:     "http error",
			err:      echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"),
			wantCode: http.StatusMethodNotAllowed,
			wantBody: `{"error":"nope"}`,
		},
		{
			name:       "unexpected",
			err:        errors.New("connection reset"),
			wantCode:   http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
			wantLogged: true,
		},
		{
			name:         "shutdown",
			err:          errors.Wrap(core.NewShutdownError("integrity issue"), "saving"),
			wantCode:     http.StatusInternalServerError,
			wantLogged:   true,
			wantShutdown: true,
		},
		{
			name:     "head request",
			err:      homework.ErrNotFound,
			method:   http.MethodHead,
			wantCode: http.StatusNotFound,
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := new(recordingLogger)
			shutdown := false
			handler := newAppHTTPErrorHandler(logger, translator, func() { shutdown = true })

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			e := echo.New()
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(method, "/", nil), rec)

			handler(tt.err, ctx)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" || method == http.MethodHead {
				assert.JSONEq(t, nonEmpty(tt.wantBody), nonEmpty(rec.Body.String()))
			}
			assert.Equal(t, tt.wantLogged, len(logger.errors) > 0)
			assert.Equal(t, tt.wantShutdown, shutdown)
		})
	}
}

func nonEmpty(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
