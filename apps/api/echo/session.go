package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/reminder"
	"github.com/trezcool/phoebuz/core/study"
)

// studyApi serves the resources of the signed in identity's workspace.
type studyApi struct {
	validate  *validator.Validate
	registry  *study.Registry
	reminders *reminder.Service
}

func registerSessionAPI(g *echo.Group, api *studyApi) {
	g.GET("/dashboard", api.dashboard)
	g.POST("/session/reload", api.reload)
	g.POST("/session/signout", api.signOut)
	g.POST("/reminders", api.sendReminders)
}

// listSubjects is public: the palette is the same for everyone.
func listSubjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, core.Subjects)
}

// Handlers

func (api *studyApi) dashboard(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ws.Summary())
}

// reload fetches every store again and returns the fresh dashboard.
func (api *studyApi) reload(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	if err := ws.Reload(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "reloading workspace")
	}
	return ctx.JSON(http.StatusOK, ws.Summary())
}

// signOut forgets the workspace of the identity. The token stays valid: the next
// request loads the data again.
func (api *studyApi) signOut(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	api.registry.Close(ctx.Request().Context(), claims.Subject)
	return ctx.NoContent(http.StatusNoContent)
}

// sendReminders emails the reminders of tomorrow's events now.
func (api *studyApi) sendReminders(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	sent, err := api.reminders.Remind(ws)
	if err != nil {
		if errors.Cause(err) == reminder.ErrNoEmail {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return errors.Wrap(err, "sending reminders")
	}
	return ctx.JSON(http.StatusOK, RemindersResponse{Sent: sent})
}
