package model

import (
	"time"
)

type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ParentID  *string   `db:"parent_id" json:"parentId,omitempty"`
	SortOrder int       `db:"sort_order" json:"sortOrder"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateCategoryParams struct {
	Name      string
	ParentID  *string
	SortOrder int
}

type UpdateCategoryParams struct {
	Name      *string
	ParentID  *string
	SortOrder *int
}

// CategoryNode is a category with its children nested, as returned by the
// tree endpoint.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}
