package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core/countdown"
	"github.com/trezcool/phoebuz/core/timetable"
)

func registerTimetableAPI(g *echo.Group, api *studyApi) {
	g.GET("/timetable", api.retrieveTimetable)
	g.PUT("/timetable", api.replaceTimetable)
	g.GET("/schedule/today", api.todaySchedule)
}

// Handlers

func (api *studyApi) retrieveTimetable(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, TimetableResponse{
		Days:      timetable.Days,
		TimeSlots: timetable.TimeSlots,
		Slots:     ws.Timetable.Items(),
	})
}

// replaceTimetable saves the whole timetable form: slots without a subject are dropped.
func (api *studyApi) replaceTimetable(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}

	var data ReplaceTimetableRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReplaceTimetableRequest")
	}
	slots := timetable.Compact(data.Slots)
	if err := timetable.Validate(api.validate, slots); err != nil {
		return err
	}

	if err := ws.Timetable.Replace(ctx.Request().Context(), slots); err != nil {
		return errors.Wrap(err, "replacing timetable")
	}
	return ctx.JSON(http.StatusOK, TimetableResponse{
		Days:      timetable.Days,
		TimeSlots: timetable.TimeSlots,
		Slots:     ws.Timetable.Items(),
	})
}

func (api *studyApi) todaySchedule(ctx echo.Context) error {
	ws, err := getContextWorkspace(ctx)
	if err != nil {
		return err
	}
	today := countdown.Today()
	return ctx.JSON(http.StatusOK, ScheduleResponse{
		Date:  today,
		Day:   timetable.DayOf(today),
		Slots: ws.Timetable.Today(),
	})
}
