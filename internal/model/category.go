package model

// Category represents a menu grouping. The hierarchy is at most one level
// deep: a category may reference a single parent and nothing below that.
type Category struct {
	ID       int64   `json:"id" db:"id"`
	ParentID *int64  `json:"parent_id,omitempty" db:"parent_id"`
	Name     string  `json:"name" db:"name"`
	Slug     *string `json:"slug,omitempty" db:"slug"`
}
