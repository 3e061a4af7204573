package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/collection"
	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/grading"
	"github.com/trezcool/phoebuz/core/homework"
	"github.com/trezcool/phoebuz/core/session"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errNoWorkspace  = errors.New("workspace not found in echo.Context")
)

// statusOf maps the domain errors to their HTTP status.
func statusOf(err error) (int, bool) {
	switch err {
	case homework.ErrNotFound, calendar.ErrNotFound, grade.ErrNotFound, collection.ErrNotFound:
		return http.StatusNotFound, true
	case session.ErrNoIdentity:
		return http.StatusUnauthorized, true
	case session.ErrStale, collection.ErrModified:
		return http.StatusConflict, true
	case grading.ErrInvalidMaxMarks:
		return http.StatusBadRequest, true
	}
	return 0, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if status, ok := statusOf(cause); ok {
			code = status
			message = cause.Error()
		} else {
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case validator.ValidationErrors:
				fldErrs := make(map[string]string, len(origErr))
				for _, vErr := range origErr {
					fldErrs[vErr.Field()] = vErr.Translate(translator)
				}
				code = http.StatusBadRequest
				message = fldErrs
			case *core.ValidationError:
				if origErr.Fields != nil {
					fldErrs := make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						fldErrs[fErr.Field] = fErr.Error
					}
					message = fldErrs
				} else {
					message = origErr.Error()
				}
				code = http.StatusBadRequest
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var id session.Identity
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					id = claims.Identity()
				}
				logger.Error(msg, errors.Wrap(err, msg), id)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
