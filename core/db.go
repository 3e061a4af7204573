package core

import "fmt"

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// CheckOrdering makes sure ord targets one of the allowed columns.
func CheckOrdering(ord DBOrdering, allowed ...string) error {
	for _, fld := range allowed {
		if ord.Field == fld {
			return nil
		}
	}
	return fmt.Errorf("unsupported ordering field %q", ord.Field)
}
