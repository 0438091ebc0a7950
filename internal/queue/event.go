// Package queue defines catalog audit events, their publisher and the
// background consumer that appends them to logs/catalog.log.
package queue

// Record event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// catalogQueueName is the durable queue all record events flow through.
const catalogQueueName = "catalog.events"

// RecordEvent is published whenever a sheet-music record is created,
// updated or deleted. It carries enough for downstream consumers to log or
// trigger notifications without querying the primary database.
type RecordEvent struct {
	Action     string `json:"action"`
	RecordID   uint64 `json:"record_id"`
	Title      string `json:"title"`
	UserID     uint64 `json:"user_id"`
	Username   string `json:"username"`
	OccurredAt string `json:"occurred_at"`
}
