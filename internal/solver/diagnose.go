package solver

import (
	"fmt"

	"github.com/openroutine/timetable-api/internal/models"
)

// Diagnose runs independent capacity analyses over the raw data and
// returns ordered, human-readable reasons a model may have no solution.
// It is advisory only and deliberately decoupled from the encoder's
// constraint semantics: lecture-room capacity is checked without the
// LECTURES_IN_LABS override, so a single root cause can surface under
// more than one lens. Identical input yields an identical report.
func Diagnose(in Input) []Finding {
	var findings []Finding

	grid := NewGrid(in.TimeSlots)
	totalSlots := grid.TotalCells()

	groupsByCourse := make(map[string]int, len(in.Groups))
	for _, g := range in.Groups {
		groupsByCourse[g.CourseID]++
	}

	// 1. Global slot sufficiency.
	totalHours := 0
	for _, s := range in.Subjects {
		totalHours += s.HoursPerWeek * groupsByCourse[s.CourseID]
	}
	totalRoomSlots := len(in.Rooms) * totalSlots
	if totalHours > totalRoomSlots {
		findings = append(findings, Finding{
			Severity: SeverityCritical,
			Message: fmt.Sprintf(
				"Total required subject hours (%d) exceeds total available room slots (%d). Add more rooms or reduce course hours.",
				totalHours, totalRoomSlots),
		})
	}

	// 2. Room type bottlenecks. Lecture shortfall is only a warning since
	// lectures may be allowed to overflow into labs.
	labHours, lectureHours := 0, 0
	for _, s := range in.Subjects {
		hrs := s.HoursPerWeek * groupsByCourse[s.CourseID]
		if s.IsLab {
			labHours += hrs
		} else {
			lectureHours += hrs
		}
	}
	labRooms, lectureRooms := 0, 0
	maxLabCapacity, maxLectureCapacity := 0, 0
	for _, r := range in.Rooms {
		if r.Type == models.RoomTypeLab {
			labRooms++
			if r.Capacity > maxLabCapacity {
				maxLabCapacity = r.Capacity
			}
		} else {
			lectureRooms++
			if r.Capacity > maxLectureCapacity {
				maxLectureCapacity = r.Capacity
			}
		}
	}
	if labHours > labRooms*totalSlots {
		findings = append(findings, Finding{
			Severity: SeverityCritical,
			Message: fmt.Sprintf(
				"Total Lab hours (%d) exceeds available Lab room slots (%d). Add more Lab rooms.",
				labHours, labRooms*totalSlots),
		})
	}
	if lectureHours > lectureRooms*totalSlots {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Total Lecture hours (%d) exceeds available Lecture room slots (%d). Add more Lecture halls.",
				lectureHours, lectureRooms*totalSlots),
		})
	}

	// 3. Per-group hard limits: each group attends its course's subjects
	// once, regardless of how many sibling groups share the course.
	for _, g := range in.Groups {
		groupHours := 0
		for _, s := range in.Subjects {
			if s.CourseID == g.CourseID {
				groupHours += s.HoursPerWeek
			}
		}
		if groupHours > totalSlots {
			findings = append(findings, Finding{
				Severity: SeverityCritical,
				Message: fmt.Sprintf(
					"Group '%s' requires %d hours/week, but there are only %d slots available.",
					g.Name, groupHours, totalSlots),
			})
		}
	}

	// 4. Room size mismatches, per room type.
	for _, g := range in.Groups {
		hasLab, hasLecture := false, false
		for _, s := range in.Subjects {
			if s.CourseID != g.CourseID {
				continue
			}
			if s.IsLab {
				hasLab = true
			} else {
				hasLecture = true
			}
		}

		if hasLab {
			switch {
			case labRooms == 0:
				findings = append(findings, Finding{
					Severity: SeverityCritical,
					Message:  fmt.Sprintf("Group '%s' has lab subjects but no Lab rooms are available.", g.Name),
				})
			case g.Size > maxLabCapacity:
				findings = append(findings, Finding{
					Severity: SeverityCritical,
					Message: fmt.Sprintf(
						"Group '%s' (Size: %d) is too large for any Lab room (Max Cap: %d).",
						g.Name, g.Size, maxLabCapacity),
				})
			}
		}
		if hasLecture {
			switch {
			case lectureRooms == 0:
				findings = append(findings, Finding{
					Severity: SeverityCritical,
					Message:  fmt.Sprintf("Group '%s' has lecture subjects but no Lecture rooms are available.", g.Name),
				})
			case g.Size > maxLectureCapacity:
				findings = append(findings, Finding{
					Severity: SeverityCritical,
					Message: fmt.Sprintf(
						"Group '%s' (Size: %d) is too large for any Lecture room (Max Cap: %d).",
						g.Name, g.Size, maxLectureCapacity),
				})
			}
		}
	}

	return findings
}
