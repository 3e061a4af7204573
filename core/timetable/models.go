package timetable

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/phoebuz/core"
)

var (
	Days      = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	TimeSlots = []string{
		"8:00-9:00", "9:00-10:00", "10:00-11:00", "11:00-12:00",
		"12:00-1:00", "1:00-2:00", "2:00-3:00",
	}
)

// Slot is one lesson of the weekly timetable, identified by (Day, Time).
type Slot struct {
	Day     string `json:"day" validate:"required,weekday"`
	Time    string `json:"time" validate:"required,timeslot"`
	Subject string `json:"subject" validate:"required,subject"`
	Notes   string `json:"notes,omitempty"`
}

func indexOf(values []string, v string) int {
	for i, val := range values {
		if val == v {
			return i
		}
	}
	return len(values)
}

// DayOf returns the timetable day d falls on; "" on weekends.
func DayOf(d core.Date) string {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return ""
	}
	return Days[wd-time.Monday]
}

// Compact cleans slots and drops the ones without a subject, like an untouched cell of the
// timetable form.
func Compact(slots []Slot) []Slot {
	compacted := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		slot.Day = core.CleanString(slot.Day)
		slot.Time = core.CleanString(slot.Time)
		slot.Subject = core.CleanString(slot.Subject)
		slot.Notes = core.CleanString(slot.Notes)
		if slot.Subject != "" {
			compacted = append(compacted, slot)
		}
	}
	return compacted
}

// Sort orders slots by day then time of day.
func Sort(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := indexOf(Days, slots[i].Day), indexOf(Days, slots[j].Day)
		if di != dj {
			return di < dj
		}
		return indexOf(TimeSlots, slots[i].Time) < indexOf(TimeSlots, slots[j].Time)
	})
}

// CheckUnique fails when two slots share a (Day, Time) pair.
func CheckUnique(slots []Slot) error {
	seen := make(map[[2]string]int, len(slots))
	for i, slot := range slots {
		k := [2]string{slot.Day, slot.Time}
		if j, ok := seen[k]; ok {
			return core.NewValidationError(nil, core.FieldError{
				Field: fmt.Sprintf("slots[%d]", i),
				Error: fmt.Sprintf("%s %s is already taken by slots[%d]", slot.Day, slot.Time, j),
			})
		}
		seen[k] = i
	}
	return nil
}

// Validate checks every slot and their uniqueness.
func Validate(validate *validator.Validate, slots []Slot) error {
	for i := range slots {
		if err := validate.Struct(slots[i]); err != nil {
			return err
		}
	}
	return CheckUnique(slots)
}

// SlotAt returns the slot of slots at (day, timeSlot).
func SlotAt(slots []Slot, day, timeSlot string) (Slot, bool) {
	for _, slot := range slots {
		if slot.Day == day && slot.Time == timeSlot {
			return slot, true
		}
	}
	return Slot{}, false
}

// ForDay returns the slots of day in time order.
func ForDay(slots []Slot, day string) []Slot {
	daySlots := make([]Slot, 0, len(TimeSlots))
	for _, slot := range slots {
		if slot.Day == day {
			daySlots = append(daySlots, slot)
		}
	}
	Sort(daySlots)
	return daySlots
}
