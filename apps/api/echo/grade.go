package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core/grade"
	"github.com/trezcool/phoebuz/core/grading"
)

var gradeColumns = map[string]lessFunc[grade.Grade]{
	"date_graded": func(a, b grade.Grade) bool { return a.DateGraded.Before(b.DateGraded) },
	"subject":     func(a, b grade.Grade) bool { return a.Subject < b.Subject },
	"weight":      func(a, b grade.Grade) bool { return a.Weight < b.Weight },
}

func registerGradeAPI(g *echo.Group, api *studyApi) {
	g.GET("", api.queryGrades)
	g.POST("", api.createGrade)
	g.GET("/averages", api.gradeAverages)

	g.GET("/:id", api.retrieveGrade)
	g.PUT("/:id", api.updateGrade)
	g.DELETE("/:id", api.destroyGrade)
}

// Handlers

func (api *studyApi) queryGrades(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var ord Ordering
	ord.Bind(ctx)
	grades, err := sortItems(ws.Grades.Items(), ord.First(grade.Ordering), gradeColumns)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *studyApi) gradeAverages(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	overall := ws.Grades.Average()
	return ctx.JSON(http.StatusOK, GradeAverages{
		Overall:  overall,
		Letter:   grading.LetterGrade(overall),
		Standing: grading.Standing(overall),
		Subjects: ws.Grades.SubjectAverages(),
	})
}

func (api *studyApi) createGrade(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := ws.Grades.Add(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *studyApi) retrieveGrade(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	g, err := ws.Grades.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *studyApi) updateGrade(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := ws.Grades.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *studyApi) destroyGrade(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	if err := ws.Grades.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
