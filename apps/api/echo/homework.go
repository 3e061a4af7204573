package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core/dashboard"
	"github.com/trezcool/phoebuz/core/homework"
)

// urgencyOrdering lists overdue homework first, then by days left.
const urgencyOrdering = "urgency"

var homeworkColumns = map[string]lessFunc[homework.Homework]{
	"due_date":      func(a, b homework.Homework) bool { return a.DueDate.Before(b.DueDate) },
	"assigned_date": func(a, b homework.Homework) bool { return a.AssignedDate.Before(b.AssignedDate) },
	"subject":       func(a, b homework.Homework) bool { return a.Subject < b.Subject },
}

func registerHomeworkAPI(g *echo.Group, api *studyApi) {
	g.GET("", api.queryHomework)
	g.POST("", api.createHomework)
	g.GET("/triage", api.triageHomework)

	g.GET("/:id", api.retrieveHomework)
	g.PUT("/:id", api.updateHomework)
	g.DELETE("/:id", api.destroyHomework)
}

// Handlers

func (api *studyApi) queryHomework(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var ord Ordering
	ord.Bind(ctx)
	o := ord.First(homework.Ordering)
	if o.Field == urgencyOrdering {
		return ctx.JSON(http.StatusOK, dashboard.SortHomework(ws.Homework.Items()))
	}
	hws, err := sortItems(ws.Homework.Items(), o, homeworkColumns)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hws)
}

func (api *studyApi) triageHomework(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dashboard.PartitionHomework(ws.Homework.Items()))
}

func (api *studyApi) createHomework(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data homework.NewHomework
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHomework")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hw, err := ws.Homework.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding homework")
	}
	return ctx.JSON(http.StatusCreated, hw)
}

func (api *studyApi) retrieveHomework(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	hw, err := ws.Homework.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, hw)
}

func (api *studyApi) updateHomework(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data homework.UpdateHomework
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateHomework")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hw, err := ws.Homework.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating homework")
	}
	return ctx.JSON(http.StatusOK, hw)
}

func (api *studyApi) destroyHomework(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	if err := ws.Homework.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return ctx.NoContent(http.StatusNoContent)
}
