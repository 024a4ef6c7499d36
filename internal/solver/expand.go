package solver

import "github.com/openroutine/timetable-api/internal/models"

// ExpandEvents pairs every subject with each student group enrolled in its
// course. A subject whose course has no groups is dropped silently: it has
// nobody to teach and contributes nothing to the model.
func ExpandEvents(subjects []models.Subject, groups []models.StudentGroup) []Event {
	byCourse := make(map[string][]models.StudentGroup, len(groups))
	for _, g := range groups {
		byCourse[g.CourseID] = append(byCourse[g.CourseID], g)
	}

	var events []Event
	for _, s := range subjects {
		for _, g := range byCourse[s.CourseID] {
			events = append(events, Event{
				Subject: s,
				Group:   g,
				Hours:   s.HoursPerWeek,
			})
		}
	}
	return events
}

// EligibleRooms returns the ids of rooms the event may use: the room type
// must match (labs strictly; lectures may spill into labs when the
// LecturesInLabs override is set) and the room must fit the group.
func EligibleRooms(ev Event, rooms []models.Room, settings Settings) []string {
	var ids []string
	for _, r := range rooms {
		if ev.Subject.IsLab && r.Type != models.RoomTypeLab {
			continue
		}
		if !ev.Subject.IsLab && r.Type == models.RoomTypeLab && !settings.LecturesInLabs {
			continue
		}
		if r.Capacity < ev.Group.Size {
			continue
		}
		ids = append(ids, r.ID)
	}
	return ids
}
