package echoapi

import (
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/calendar"
	"github.com/trezcool/phoebuz/core/grading"
	"github.com/trezcool/phoebuz/core/timetable"
)

var orderingParam = "ordering"

// Ordering is read from `?ordering=field,-other`: a leading "-" sorts descending.
type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field != "" {
			ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
		}
	}
}

// First returns the first requested ordering, or def when none was.
func (ord Ordering) First(def core.DBOrdering) core.DBOrdering {
	if len(ord.Orderings) == 0 {
		return def
	}
	return ord.Orderings[0]
}

// lessFunc reports whether a sorts before b in ascending order.
type lessFunc[T any] func(a, b T) bool

// sortItems sorts a copy of items by ord, which must name one of columns.
func sortItems[T any](items []T, ord core.DBOrdering, columns map[string]lessFunc[T]) ([]T, error) {
	less, ok := columns[ord.Field]
	if !ok {
		fields := make([]string, 0, len(columns))
		for fld := range columns {
			fields = append(fields, fld)
		}
		sort.Strings(fields)
		err := core.CheckOrdering(ord, fields...)
		return nil, core.NewValidationError(err, core.FieldError{Field: orderingParam, Error: err.Error()})
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ord.Ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted, nil
}

type ReplaceTimetableRequest struct {
	Slots []timetable.Slot `json:"slots"`
}

type GradeAverages struct {
	Overall  int                     `json:"overall"`
	Letter   string                  `json:"letter"`
	Standing string                  `json:"standing"`
	Subjects []grading.SubjectResult `json:"subjects"`
}

type TimetableResponse struct {
	Days      []string         `json:"days"`
	TimeSlots []string         `json:"time_slots"`
	Slots     []timetable.Slot `json:"slots"`
}

type ScheduleResponse struct {
	Date  core.Date        `json:"date"`
	Day   string           `json:"day"` // empty on weekends
	Slots []timetable.Slot `json:"slots"`
}

type RemindersResponse struct {
	Sent []calendar.Event `json:"sent"`
}
