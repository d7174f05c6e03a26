package meeting

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m *Meeting) error
	GetByID(ctx context.Context, id uint64) (*Meeting, error)
	List(ctx context.Context) ([]Meeting, error)
	Save(ctx context.Context, m *Meeting) error
	Delete(ctx context.Context, id uint64) error

	// ReplaceAttendance drops the meeting's attendance rows and inserts the
	// submitted set in a single transaction.
	ReplaceAttendance(ctx context.Context, meetingID uint64, rows []Attendance) error
	ListAttendance(ctx context.Context, meetingID uint64) ([]Attendance, error)
	Summary(ctx context.Context, from, to time.Time) ([]MemberSummary, error)
}
