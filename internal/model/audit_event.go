package model

import "time"

// AuditEvent is a persisted record of a state-changing API action.
// Events travel through the broker and are written by the audit worker,
// so a write here never blocks the request that produced it.
type AuditEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Action     string    `gorm:"size:64;not null;index" json:"action"`
	EntityID   uint      `json:"entity_id"`
	ActorID    uint      `json:"actor_id"`
	Detail     string    `gorm:"size:512" json:"detail"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Audit action names published by the handlers.
const (
	ActionTodoCreated    = "todo.created"
	ActionTodoUpdated    = "todo.updated"
	ActionTodoDeleted    = "todo.deleted"
	ActionUserRegistered = "user.registered"
)
