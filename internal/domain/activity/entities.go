package activity

import "time"

// Record is one immutable audit row: who did what, against which entity, with
// which outcome. Written exactly once by the audit sidecar; no update or delete
// path exists in the application.
type Record struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"id"`
	ActorID      uint64    `gorm:"column:actor_id;index:idx_activity_actor" json:"actor_id"`
	ActorName    string    `gorm:"size:128;column:actor_name" json:"actor_name"`
	ActorRole    string    `gorm:"size:32;column:actor_role" json:"actor_role"`
	Action       string    `gorm:"size:64;column:action;index:idx_activity_action" json:"action"`
	EntityType   string    `gorm:"size:64;column:entity_type;index:idx_activity_entity" json:"entity_type"`
	EntityID     string    `gorm:"size:64;column:entity_id" json:"entity_id,omitempty"`
	Description  string    `gorm:"size:512;column:description" json:"description,omitempty"`
	Details      string    `gorm:"type:text;column:details" json:"details,omitempty"`
	Method       string    `gorm:"size:8;column:method" json:"method"`
	Endpoint     string    `gorm:"size:256;column:endpoint" json:"endpoint"`
	IPAddress    string    `gorm:"size:64;column:ip_address" json:"ip_address,omitempty"`
	UserAgent    string    `gorm:"size:256;column:user_agent" json:"user_agent,omitempty"`
	StatusCode   int       `gorm:"column:status_code" json:"status_code"`
	IsSuccess    bool      `gorm:"column:is_success" json:"is_success"`
	ErrorMessage string    `gorm:"size:512;column:error_message" json:"error_message,omitempty"`
	Timestamp    time.Time `gorm:"column:timestamp;index:idx_activity_timestamp" json:"timestamp"`
	DurationMS   int64     `gorm:"column:duration_ms" json:"duration_ms"`
}

func (Record) TableName() string { return "activity_records" }

// Filter is the retrieval descriptor for the read side. Zero values mean
// "not filtered".
type Filter struct {
	ActorID    *uint64
	Action     string
	EntityType string
	From       *time.Time
	To         *time.Time
	StatusMin  *int
	StatusMax  *int
	MinMS      *int64
	MaxMS      *int64
	// Search matches description and details, case-insensitive substring.
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

type Page struct {
	Records    []Record `json:"records"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

type CountBucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type ActorCount struct {
	ActorID   uint64 `json:"actor_id"`
	ActorName string `json:"actor_name"`
	Count     int64  `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type Stats struct {
	Total         int64         `json:"total"`
	ByAction      []CountBucket `json:"by_action"`
	ByEntity      []CountBucket `json:"by_entity"`
	ByActor       []ActorCount  `json:"by_actor"`
	ByDay         []DayCount    `json:"by_day"`
	AvgDurationMS float64       `json:"avg_duration_ms"`
	SuccessRate   float64       `json:"success_rate"`
}
