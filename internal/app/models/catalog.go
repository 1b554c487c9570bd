package models

// Category groups courses for display.
type Category struct {
	ID          int64  `json:"id" db:"id"`
	ProgrammeID int64  `json:"programmeId" db:"programme_id"`
	Name        string `json:"name" db:"name" example:"Mandatory"`
	Position    int    `json:"position" db:"position"`
}

// Subcategory refines a category.
type Subcategory struct {
	ID          int64  `json:"id" db:"id"`
	ProgrammeID int64  `json:"programmeId" db:"programme_id"`
	CategoryID  int64  `json:"categoryId" db:"category_id"`
	Name        string `json:"name" db:"name" example:"Complementary"`
}

// Major is a specialisation a course can count towards.
type Major struct {
	ID          int64  `json:"id" db:"id"`
	ProgrammeID int64  `json:"programmeId" db:"programme_id"`
	Name        string `json:"name" db:"name" example:"Artificial Intelligence"`
}

// Minor is a secondary specialisation.
type Minor struct {
	ID          int64  `json:"id" db:"id"`
	ProgrammeID int64  `json:"programmeId" db:"programme_id"`
	Name        string `json:"name" db:"name" example:"Economics"`
}

// Season is a term or offering period.
type Season struct {
	ID          int64  `json:"id" db:"id"`
	ProgrammeID int64  `json:"programmeId" db:"programme_id"`
	Name        string `json:"name" db:"name" example:"Autumn"`
	Position    int    `json:"position" db:"position"`
}

// CategoriesData bundles the classification lists of one programme.
type CategoriesData struct {
	Categories    []*Category    `json:"categories"`
	Subcategories []*Subcategory `json:"subcategories"`
	Majors        []*Major       `json:"majors"`
	Minors        []*Minor       `json:"minors"`
}

// Category returns the category with the given id.
func (d *CategoriesData) Category(id int64) (*Category, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Subcategory returns the subcategory with the given id.
func (d *CategoriesData) Subcategory(id int64) (*Subcategory, bool) {
	for _, s := range d.Subcategories {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// HasMajor reports whether id names a major of the programme.
func (d *CategoriesData) HasMajor(id int64) bool {
	for _, m := range d.Majors {
		if m.ID == id {
			return true
		}
	}
	return false
}

// HasMinor reports whether id names a minor of the programme.
func (d *CategoriesData) HasMinor(id int64) bool {
	for _, m := range d.Minors {
		if m.ID == id {
			return true
		}
	}
	return false
}
