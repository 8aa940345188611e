package model

import "time"

// Todo is a global list entry. There is deliberately no owner column:
// any caller the route policy admits may act on any todo.
type Todo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
