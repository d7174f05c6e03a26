package meeting

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("meeting not found")

type Meeting struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"id"`
	MeetingDate time.Time `gorm:"column:meeting_date;index" json:"meeting_date"`
	Title       string    `gorm:"size:256;column:title" json:"title"`
	Notes       string    `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string { return "meetings" }

type Attendance struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"id"`
	MeetingID uint64 `gorm:"column:meeting_id;index:idx_attendance_meeting" json:"meeting_id"`
	MemberID  uint64 `gorm:"column:member_id;index:idx_attendance_member" json:"member_id"`
	Present   bool   `gorm:"column:present" json:"present"`
}

func (Attendance) TableName() string { return "attendances" }

// MemberSummary is one row of the per-member attendance aggregation.
type MemberSummary struct {
	MemberID uint64 `json:"member_id"`
	Present  int64  `json:"present"`
	Absent   int64  `json:"absent"`
}
