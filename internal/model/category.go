package model

// Category is a named grouping that products belong to.
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// NewCategory is the input for creating a category.
type NewCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
