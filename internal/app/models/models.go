// Package models holds the records persisted by the repositories.
package models

// CatalogKind names the programme-scoped classification tables.
type CatalogKind string

const (
	CatalogCategory    CatalogKind = "categories"
	CatalogSubcategory CatalogKind = "subcategories"
	CatalogMajor       CatalogKind = "majors"
	CatalogMinor       CatalogKind = "minors"
)

// Valid reports whether k is one of the known catalog tables.
func (k CatalogKind) Valid() bool {
	switch k {
	case CatalogCategory, CatalogSubcategory, CatalogMajor, CatalogMinor:
		return true
	}
	return false
}
