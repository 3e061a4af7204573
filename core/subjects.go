package core

type Subject struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Subjects is the palette offered by every form.
var Subjects = []Subject{
	{Name: "Math", Color: "#3B82F6"},
	{Name: "English", Color: "#10B981"},
	{Name: "Science", Color: "#8B5CF6"},
	{Name: "History", Color: "#F59E0B"},
	{Name: "Geography", Color: "#EF4444"},
	{Name: "Computer", Color: "#06B6D4"},
	{Name: "Art", Color: "#EC4899"},
	{Name: "PE", Color: "#84CC16"},
}

func IsSubject(name string) bool {
	for _, s := range Subjects {
		if s.Name == name {
			return true
		}
	}
	return false
}
