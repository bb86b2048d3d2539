package models

import "time"

// Task is a single to-do item. Every task belongs to exactly one user;
// visibility and mutation are scoped to that owner.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
