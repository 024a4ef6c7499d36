// Command seed provisions the demo institution account with the sample
// dataset: two courses, seven faculty, four groups, four rooms, nine
// subjects and a 6-day, 8-slot grid. Running it twice is a no-op.
package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/openroutine/timetable-api/pkg/config"
	"github.com/openroutine/timetable-api/pkg/database"
)

const (
	demoUsername = "demo_institution"
	demoPassword = "demo123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	tenantID, err := ensureDemoUser(ctx, db)
	if err != nil {
		log.Fatalf("failed to ensure demo user: %v", err)
	}

	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(*) FROM faculties WHERE tenant_id = $1`, tenantID); err != nil {
		log.Fatalf("failed to check existing data: %v", err)
	}
	if existing > 0 {
		log.Printf("demo data already present for %s, nothing to do", demoUsername)
		return
	}

	if err := seed(ctx, db, tenantID); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}
	log.Printf("seeded demo data for %s", demoUsername)
}

func ensureDemoUser(ctx context.Context, db *sqlx.DB) (string, error) {
	var id string
	err := db.GetContext(ctx, &id, `SELECT id FROM users WHERE username = $1`, demoUsername)
	if err == nil {
		return id, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	id = uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, is_demo) VALUES ($1, $2, $3, TRUE)`,
		id, demoUsername, string(hash))
	return id, err
}

func seed(ctx context.Context, db *sqlx.DB, tenantID string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	type faculty struct {
		id    string
		name  string
		hours int
	}
	faculties := []faculty{
		{uuid.NewString(), "Dr. Sarah Johnson", 20},
		{uuid.NewString(), "Prof. Michael Chen", 18},
		{uuid.NewString(), "Dr. Alan Turing", 15},
		{uuid.NewString(), "Grace Hopper", 18},
		{uuid.NewString(), "Dr. Emily Davis", 22},
		{uuid.NewString(), "Nikola Tesla", 20},
		{uuid.NewString(), "James Maxwell", 15},
	}
	for _, f := range faculties {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO faculties (id, tenant_id, name, max_hours_per_week) VALUES ($1, $2, $3, $4)`,
			f.id, tenantID, f.name, f.hours); err != nil {
			return err
		}
	}

	csCourse := uuid.NewString()
	eeCourse := uuid.NewString()

	groups := []struct {
		name   string
		course string
		size   int
	}{
		{"CS-2024", csCourse, 60},
		{"CS-2023", csCourse, 55},
		{"EE-2024", eeCourse, 45},
		{"EE-2023", eeCourse, 40},
	}
	for _, g := range groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO student_groups (id, tenant_id, name, course_id, size) VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), tenantID, g.name, g.course, g.size); err != nil {
			return err
		}
	}

	rooms := []struct {
		name     string
		capacity int
		kind     string
	}{
		{"Lecture Hall 1", 100, "lecture"},
		{"CS Lab Alpha", 75, "lab"},
		{"EE Lab Beta", 60, "lab"},
		{"Seminar Room 1", 50, "lecture"},
	}
	for _, r := range rooms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (id, tenant_id, name, capacity, type) VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), tenantID, r.name, r.capacity, r.kind); err != nil {
			return err
		}
	}

	subjects := []struct {
		name    string
		course  string
		hours   int
		faculty string
		isLab   bool
	}{
		{"Deep Learning", csCourse, 4, faculties[0].id, false},
		{"Data Structures", csCourse, 3, faculties[1].id, false},
		{"AI Lab", csCourse, 2, faculties[0].id, true},
		{"Operating Systems", csCourse, 3, faculties[2].id, false},
		{"Database Systems", csCourse, 3, faculties[3].id, false},
		{"Power Systems", eeCourse, 4, faculties[4].id, false},
		{"Control Theory", eeCourse, 3, faculties[5].id, false},
		{"Electromagnetism", eeCourse, 3, faculties[6].id, false},
		{"Circuit Design", eeCourse, 3, faculties[5].id, true},
	}
	for _, s := range subjects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO subjects (id, tenant_id, name, course_id, hours_per_week, faculty_id, is_lab)
             VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), tenantID, s.name, s.course, s.hours, s.faculty, s.isLab); err != nil {
			return err
		}
	}

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	for _, day := range days {
		for slot := 1; slot <= 8; slot++ {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO time_slots (id, tenant_id, day, slot_number) VALUES ($1, $2, $3, $4)`,
				uuid.NewString(), tenantID, day, slot); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
