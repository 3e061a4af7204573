package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/dashboard"
)

var eventColumns = map[string]lessFunc[calendar.Event]{
	"date":    func(a, b calendar.Event) bool { return a.Date.Before(b.Date) },
	"subject": func(a, b calendar.Event) bool { return a.Subject < b.Subject },
}

func registerEventAPI(g *echo.Group, api *studyApi) {
	g.GET("", api.queryEvents)
	g.POST("", api.createEvent)
	g.GET("/split", api.splitEvents)

	g.GET("/:id", api.retrieveEvent)
	g.PUT("/:id", api.updateEvent)
	g.DELETE("/:id", api.destroyEvent)
}

// Handlers

func (api *studyApi) queryEvents(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var ord Ordering
	ord.Bind(ctx)
	events, err := sortItems(ws.Calendar.Items(), ord.First(calendar.Ordering), eventColumns)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, events)
}

// splitEvents lists the events from today on, then the past ones.
func (api *studyApi) splitEvents(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dashboard.SplitEvents(ws.Calendar.Items()))
}

func (api *studyApi) createEvent(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data calendar.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := ws.Calendar.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding event")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *studyApi) retrieveEvent(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	e, err := ws.Calendar.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *studyApi) updateEvent(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data calendar.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := ws.Calendar.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *studyApi) destroyEvent(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	if err := ws.Calendar.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
