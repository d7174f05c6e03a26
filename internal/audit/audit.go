// Package audit is the best-effort activity recorder. Callers capture plain
// values synchronously and hand them to Enqueue; a single writer goroutine
// persists them on its own schedule with its own storage context. A slow or
// failing audit write never blocks or fails the operation that produced it.
package audit

import (
	"encoding/json"
	"time"

	"sangam-backend/internal/domain/activity"
)

// Placeholder stored when a details object cannot be serialized.
const unserializable = "<unserializable>"

// Entry carries everything needed to persist one activity record. Values only:
// nothing here may reference a request, connection or transaction whose
// lifetime ends when the originating handler returns.
type Entry struct {
	ActorID      uint64
	ActorName    string
	ActorRole    string
	Action       string
	EntityType   string
	EntityID     string
	Description  string
	Details      any
	Method       string
	Endpoint     string
	IPAddress    string
	UserAgent    string
	StatusCode   int
	IsSuccess    bool
	ErrorMessage string
	Timestamp    time.Time
	DurationMS   int64
}

// Sink accepts entries without blocking. Enqueue returns false when the entry
// was dropped (queue full or sink closed); callers are free to ignore that.
type Sink interface {
	Enqueue(e Entry) bool
}

func (e Entry) toRecord() *activity.Record {
	return &activity.Record{
		ActorID:      e.ActorID,
		ActorName:    e.ActorName,
		ActorRole:    e.ActorRole,
		Action:       e.Action,
		EntityType:   e.EntityType,
		EntityID:     e.EntityID,
		Description:  e.Description,
		Details:      detailsText(e.Details),
		Method:       e.Method,
		Endpoint:     e.Endpoint,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		StatusCode:   e.StatusCode,
		IsSuccess:    e.IsSuccess,
		ErrorMessage: e.ErrorMessage,
		Timestamp:    e.Timestamp,
		DurationMS:   e.DurationMS,
	}
}

func detailsText(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return unserializable
	}
	return string(b)
}
