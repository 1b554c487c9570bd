package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/studyplan/internal/db"
	"github.com/yigit/studyplan/internal/pkg/auth"
)

// Admin is the account created on first start.
type Admin struct {
	Email    string
	Password string
}

// SampleProgramme is the programme seeded alongside the admin account.
const SampleProgramme = "Computer Science MSc"

type sampleCourse struct {
	code, name, link string
	credits          float64
	season, category string
}

var (
	sampleCategories = []string{"Mandatory", "Elective"}
	sampleSeasons    = []string{"Autumn", "Spring"}
	sampleCourses    = []sampleCourse{
		{"TDT4100", "Object-Oriented Programming", "https://www.ntnu.edu/studies/courses/TDT4100", 7.5, "Spring", "Mandatory"},
		{"TDT4120", "Algorithms and Data Structures", "https://www.ntnu.edu/studies/courses/TDT4120", 7.5, "Autumn", "Mandatory"},
		{"TDT4145", "Data Modelling, Databases and Database Management Systems", "", 7.5, "Spring", "Mandatory"},
		{"TDT4173", "Machine Learning", "", 7.5, "Autumn", "Elective"},
	}
)

// CreateDefaultData creates the admin user and a sample programme with its
// catalog and courses. Nothing is written when the admin already exists.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, admin Admin, lgr zerolog.Logger) error {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	email := strings.ToLower(admin.Email)

	var exists bool
	if err := dbPool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		lgr.Info().Str("email", email).Msg("Default data already present, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	lgr.Info().Msg("Creating default data (admin user, sample programme)...")
	return db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
		insert := func(table string, columns []string, values ...interface{}) (int64, error) {
			sql, args, err := sb.Insert(table).Columns(columns...).Values(values...).Suffix("RETURNING id").ToSql()
			if err != nil {
				return 0, fmt.Errorf("failed to build %s insert: %w", table, err)
			}
			var id int64
			if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
				return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
			}
			return id, nil
		}

		if _, err := insert("users", []string{"email", "password", "first_name", "last_name", "is_active"},
			email, hash, "Admin", "User", true); err != nil {
			return err
		}

		var programmeID int64
		err := tx.QueryRow(ctx, "SELECT id FROM programmes WHERE name = $1", SampleProgramme).Scan(&programmeID)
		switch {
		case err == nil:
			lgr.Info().Str("programme", SampleProgramme).Msg("Sample programme exists, keeping it")
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("failed to look up sample programme: %w", err)
		}

		if programmeID, err = insert("programmes", []string{"name", "min_credits"}, SampleProgramme, 120); err != nil {
			return err
		}

		categories := make(map[string]int64, len(sampleCategories))
		for i, name := range sampleCategories {
			id, err := insert("categories", []string{"programme_id", "name", "position"}, programmeID, name, i)
			if err != nil {
				return err
			}
			categories[name] = id
		}

		seasons := make(map[string]int64, len(sampleSeasons))
		for i, name := range sampleSeasons {
			id, err := insert("seasons", []string{"programme_id", "name", "position"}, programmeID, name, i)
			if err != nil {
				return err
			}
			seasons[name] = id
		}

		for _, c := range sampleCourses {
			if _, err := insert("courses",
				[]string{"programme_id", "school_course_id", "name", "link", "credits", "season_id", "category_id"},
				programmeID, c.code, c.name, c.link, c.credits, seasons[c.season], categories[c.category]); err != nil {
				return err
			}
		}

		lgr.Info().Int64("programmeId", programmeID).Int("courses", len(sampleCourses)).Msg("Default data created")
		return nil
	})
}
