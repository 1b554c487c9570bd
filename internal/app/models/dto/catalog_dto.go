package dto

// CatalogEntryRequest creates or renames a category, major or minor.
type CatalogEntryRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Position int    `json:"position"`
}

// SubcategoryRequest creates or renames a subcategory.
type SubcategoryRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	CategoryID int64  `json:"categoryId" binding:"required,min=1"`
}

// SeasonRequest creates or updates a season.
type SeasonRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Position int    `json:"position"`
}
