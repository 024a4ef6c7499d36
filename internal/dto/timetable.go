package dto

// TimetableCell is one rendered class in a group's weekly view.
type TimetableCell struct {
	Slot        int     `json:"slot"`
	SubjectName string  `json:"subject_name"`
	RoomName    string  `json:"room_name"`
	FacultyName *string `json:"faculty_name,omitempty"`
	IsLab       bool    `json:"is_lab"`
}

// GroupedTimetable arranges entries by group name, then day, in slot order.
type GroupedTimetable map[string]map[string][]TimetableCell
