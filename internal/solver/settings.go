package solver

import (
	"strconv"
	"strings"
)

// Setting keys recognised by the solver. Persisted per tenant as strings;
// anything else in the settings table is ignored here.
const (
	KeyConsecutiveLabsWeight  = "CONSECUTIVE_LABS_WEIGHT"
	KeyMaxHoursPenalty        = "MAX_HOURS_PENALTY"
	KeyConsecutivePenalty     = "CONSECUTIVE_PENALTY"
	KeySameDayMultiPenalty    = "SAME_DAY_MULTI_PENALTY"
	KeyLecturesInLabs         = "LECTURES_IN_LABS"
	KeyMaxConsecutiveLectures = "MAX_CONSECUTIVE_LECTURES"
	KeySolverTimeLimit        = "SOLVER_TIME_LIMIT"

	KeyFacultyMaxHoursEnabled     = "CONSTRAINT_FACULTY_MAX_HOURS_ENABLED"
	KeyFacultyConsecutiveEnabled  = "CONSTRAINT_FACULTY_CONSECUTIVE_ENABLED"
	KeyLabConsecutiveEnabled      = "CONSTRAINT_LAB_CONSECUTIVE_ENABLED"
	KeySubjectDistributionEnabled = "CONSTRAINT_SUBJECT_DISTRIBUTION_ENABLED"

	KeyLimitMaxSubjects  = "LIMIT_MAX_SUBJECTS"
	KeyLimitMaxGroups    = "LIMIT_MAX_GROUPS"
	KeyLimitMaxRooms     = "LIMIT_MAX_ROOMS"
	KeyLimitMaxFaculties = "LIMIT_MAX_FACULTIES"
)

// Settings are the tunable weights, toggles and limits for one solve.
// Only soft constraints are toggleable; the four hard constraint families
// (exact hours, room/group/faculty exclusivity) always hold.
type Settings struct {
	ConsecutiveLabsWeight  int
	MaxHoursPenalty        int
	ConsecutivePenalty     int
	SameDayMultiPenalty    int
	LecturesInLabs         bool
	MaxConsecutiveLectures int
	TimeLimitSeconds       float64

	FacultyMaxHoursEnabled     bool
	FacultyConsecutiveEnabled  bool
	LabConsecutiveEnabled      bool
	SubjectDistributionEnabled bool

	// Caps on how many entities are fed to the encoder; 0 means unlimited.
	LimitMaxSubjects  int
	LimitMaxGroups    int
	LimitMaxRooms     int
	LimitMaxFaculties int
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		ConsecutiveLabsWeight:  100,
		MaxHoursPenalty:        500,
		ConsecutivePenalty:     10,
		SameDayMultiPenalty:    10,
		LecturesInLabs:         false,
		MaxConsecutiveLectures: 3,
		TimeLimitSeconds:       30,

		FacultyMaxHoursEnabled:     true,
		FacultyConsecutiveEnabled:  true,
		LabConsecutiveEnabled:      true,
		SubjectDistributionEnabled: true,
	}
}

// SettingsFromMap merges persisted key/value pairs over the defaults.
// Unknown keys are ignored; unparseable values keep the default.
func SettingsFromMap(values map[string]string) Settings {
	s := DefaultSettings()
	for key, raw := range values {
		switch key {
		case KeyConsecutiveLabsWeight:
			setInt(&s.ConsecutiveLabsWeight, raw)
		case KeyMaxHoursPenalty:
			setInt(&s.MaxHoursPenalty, raw)
		case KeyConsecutivePenalty:
			setInt(&s.ConsecutivePenalty, raw)
		case KeySameDayMultiPenalty:
			setInt(&s.SameDayMultiPenalty, raw)
		case KeyLecturesInLabs:
			setBool(&s.LecturesInLabs, raw)
		case KeyMaxConsecutiveLectures:
			setInt(&s.MaxConsecutiveLectures, raw)
		case KeySolverTimeLimit:
			setFloat(&s.TimeLimitSeconds, raw)
		case KeyFacultyMaxHoursEnabled:
			setBool(&s.FacultyMaxHoursEnabled, raw)
		case KeyFacultyConsecutiveEnabled:
			setBool(&s.FacultyConsecutiveEnabled, raw)
		case KeyLabConsecutiveEnabled:
			setBool(&s.LabConsecutiveEnabled, raw)
		case KeySubjectDistributionEnabled:
			setBool(&s.SubjectDistributionEnabled, raw)
		case KeyLimitMaxSubjects:
			setInt(&s.LimitMaxSubjects, raw)
		case KeyLimitMaxGroups:
			setInt(&s.LimitMaxGroups, raw)
		case KeyLimitMaxRooms:
			setInt(&s.LimitMaxRooms, raw)
		case KeyLimitMaxFaculties:
			setInt(&s.LimitMaxFaculties, raw)
		}
	}
	return s
}

func setInt(dst *int, raw string) {
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		*dst = v
	}
}

func setFloat(dst *float64, raw string) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		*dst = v
	}
}

func setBool(dst *bool, raw string) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	}
}
