package courselist

import (
	"github.com/yigit/studyplan/internal/app/models"
)

// Row is one course line of the panel.
type Row struct {
	Course      *models.Course
	Subcategory string
	Taken       bool
}

// SeasonGroup holds the rows of one season inside a category. Season is nil
// for courses whose season is unknown.
type SeasonGroup struct {
	Season *models.Season
	Rows   []Row
}

// CategoryGroup holds the courses of one category. Category is nil for
// courses whose category is unknown; that group comes last.
type CategoryGroup struct {
	Category *models.Category
	Seasons  []SeasonGroup
	Credits  float64
}

// Name is the display name of the group.
func (g CategoryGroup) Name() string {
	if g.Category == nil {
		return "Uncategorized"
	}
	return g.Category.Name
}

// FilterByIDs keeps the courses whose id is in show, in their original
// order. A nil show keeps everything.
func FilterByIDs(courses []*models.Course, show []int64) []*models.Course {
	if show == nil {
		return courses
	}
	set := make(map[int64]struct{}, len(show))
	for _, id := range show {
		set[id] = struct{}{}
	}
	out := make([]*models.Course, 0, len(show))
	for _, c := range courses {
		if _, ok := set[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// GroupByCategory groups courses by category, then by season, following the
// order of the categories and seasons. Groups without courses are omitted.
func GroupByCategory(courses []*models.Course, data *models.CategoriesData, seasons []*models.Season, taken map[int64]bool) []CategoryGroup {
	var categories []*models.Category
	if data != nil {
		categories = data.Categories
	}

	byCategory := make(map[int64][]*models.Course)
	var uncategorized []*models.Course
	known := make(map[int64]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, course := range courses {
		if known[course.CategoryID] {
			byCategory[course.CategoryID] = append(byCategory[course.CategoryID], course)
		} else {
			uncategorized = append(uncategorized, course)
		}
	}

	groups := make([]CategoryGroup, 0, len(categories)+1)
	for _, category := range categories {
		if list := byCategory[category.ID]; len(list) > 0 {
			groups = append(groups, buildCategoryGroup(category, list, data, seasons, taken))
		}
	}
	if len(uncategorized) > 0 {
		groups = append(groups, buildCategoryGroup(nil, uncategorized, data, seasons, taken))
	}
	return groups
}

func buildCategoryGroup(category *models.Category, courses []*models.Course, data *models.CategoriesData, seasons []*models.Season, taken map[int64]bool) CategoryGroup {
	group := CategoryGroup{Category: category}

	bySeason := make(map[int64][]Row)
	var unknown []Row
	knownSeason := make(map[int64]bool, len(seasons))
	for _, s := range seasons {
		knownSeason[s.ID] = true
	}

	for _, course := range courses {
		group.Credits += course.Credits
		row := Row{Course: course, Taken: taken[course.ID]}
		if data != nil && course.SubcategoryID != nil {
			if sub, ok := data.Subcategory(*course.SubcategoryID); ok {
				row.Subcategory = sub.Name
			}
		}
		if knownSeason[course.SeasonID] {
			bySeason[course.SeasonID] = append(bySeason[course.SeasonID], row)
		} else {
			unknown = append(unknown, row)
		}
	}

	for _, season := range seasons {
		if rows := bySeason[season.ID]; len(rows) > 0 {
			group.Seasons = append(group.Seasons, SeasonGroup{Season: season, Rows: rows})
		}
	}
	if len(unknown) > 0 {
		group.Seasons = append(group.Seasons, SeasonGroup{Rows: unknown})
	}
	return group
}
