package courselist

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models"
	"golang.org/x/sync/errgroup"
)

// CourseSource lists and mutates the courses of a programme.
type CourseSource interface {
	List(ctx context.Context, programmeID int64) ([]*models.Course, error)
	Add(ctx context.Context, programmeID int64, in models.CourseInput) (*models.Course, error)
	Update(ctx context.Context, programmeID, courseID int64, in models.CourseInput) (*models.Course, error)
	Remove(ctx context.Context, programmeID, courseID int64) error
}

// CatalogSource reads the classification data and seasons of a programme.
type CatalogSource interface {
	CategoriesData(ctx context.Context, programmeID int64) (*models.CategoriesData, error)
	Seasons(ctx context.Context, programmeID int64) ([]*models.Season, error)
}

// ProgrammeSource reads programme metadata.
type ProgrammeSource interface {
	Get(ctx context.Context, id int64) (*models.Programme, error)
}

// Data is everything the panel shows for one programme. CategoriesData and
// Seasons are nil when they could not be loaded.
type Data struct {
	Programme      *models.Programme
	Courses        []*models.Course
	CategoriesData *models.CategoriesData
	Seasons        []*models.Season
}

// List loads programme data and runs course mutations for the panel.
type List struct {
	courses    CourseSource
	catalog    CatalogSource
	programmes ProgrammeSource
	logger     zerolog.Logger
}

// NewList creates a List.
func NewList(courses CourseSource, catalog CatalogSource, programmes ProgrammeSource, logger zerolog.Logger) *List {
	return &List{
		courses:    courses,
		catalog:    catalog,
		programmes: programmes,
		logger:     logger,
	}
}

// Load fetches programme, courses, categories data and seasons concurrently.
// Programme and courses are required; a failure of either cancels the other
// loads. Catalog failures are logged and leave the field nil.
func (l *List) Load(ctx context.Context, programmeID int64) (*Data, error) {
	data := &Data{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := l.programmes.Get(gctx, programmeID)
		if err != nil {
			return err
		}
		data.Programme = p
		return nil
	})
	g.Go(func() error {
		courses, err := l.courses.List(gctx, programmeID)
		if err != nil {
			return err
		}
		data.Courses = courses
		return nil
	})
	g.Go(func() error {
		cd, err := l.catalog.CategoriesData(gctx, programmeID)
		if err != nil {
			l.logger.Warn().Err(err).Int64("programmeID", programmeID).Msg("Categories data unavailable")
			return nil
		}
		data.CategoriesData = cd
		return nil
	})
	g.Go(func() error {
		seasons, err := l.catalog.Seasons(gctx, programmeID)
		if err != nil {
			l.logger.Warn().Err(err).Int64("programmeID", programmeID).Msg("Seasons unavailable")
			return nil
		}
		data.Seasons = seasons
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
