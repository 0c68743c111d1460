package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultTaskCategory   = "To-Do"
	MaxTaskTitleLen       = 50
	MaxTaskDescriptionLen = 200
)

// TaskRecord is a to-do entry owned by one user.
// UserID holds the owner's email and is immutable after creation.
type TaskRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// TaskChanges is a partial update; nil fields are left untouched.
type TaskChanges struct {
	Title       *string `bson:"title,omitempty" json:"title,omitempty"`
	Description *string `bson:"description,omitempty" json:"description,omitempty"`
	Category    *string `bson:"category,omitempty" json:"category,omitempty"`
}

// Empty reports whether no field is set.
func (c TaskChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Category == nil
}

// Apply copies the set fields onto t.
func (c TaskChanges) Apply(t *TaskRecord) {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Category != nil {
		t.Category = *c.Category
	}
}
