package meeting

import (
	"context"
	"errors"
	"time"

	"sangam-backend/internal/domain/meeting"
)

type Usecase struct{ repo meeting.Repository }

func NewUsecase(r meeting.Repository) *Usecase { return &Usecase{repo: r} }

type MeetingInput struct {
	MeetingDate time.Time `json:"meeting_date" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Notes       string    `json:"notes"`
}

type AttendanceRow struct {
	MemberID uint64 `json:"member_id" validate:"required"`
	Present  bool   `json:"present"`
}

func (u *Usecase) Create(ctx context.Context, in MeetingInput) (*meeting.Meeting, error) {
	m := &meeting.Meeting{MeetingDate: in.MeetingDate.UTC(), Title: in.Title, Notes: in.Notes}
	if err := u.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*meeting.Meeting, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context) ([]meeting.Meeting, error) {
	return u.repo.List(ctx)
}

func (u *Usecase) Update(ctx context.Context, id uint64, in MeetingInput) (*meeting.Meeting, error) {
	m, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.MeetingDate = in.MeetingDate.UTC()
	m.Title = in.Title
	m.Notes = in.Notes
	if err := u.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	return u.repo.Delete(ctx, id)
}

// SetAttendance replaces the meeting's attendance sheet wholesale.
func (u *Usecase) SetAttendance(ctx context.Context, meetingID uint64, rows []AttendanceRow) error {
	if _, err := u.repo.GetByID(ctx, meetingID); err != nil {
		return err
	}
	seen := make(map[uint64]bool, len(rows))
	recs := make([]meeting.Attendance, 0, len(rows))
	for _, row := range rows {
		if row.MemberID == 0 {
			return errors.New("attendance row missing member id")
		}
		if seen[row.MemberID] {
			return errors.New("duplicate member in attendance sheet")
		}
		seen[row.MemberID] = true
		recs = append(recs, meeting.Attendance{MemberID: row.MemberID, Present: row.Present})
	}
	return u.repo.ReplaceAttendance(ctx, meetingID, recs)
}

func (u *Usecase) Attendance(ctx context.Context, meetingID uint64) ([]meeting.Attendance, error) {
	if _, err := u.repo.GetByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return u.repo.ListAttendance(ctx, meetingID)
}

func (u *Usecase) Summary(ctx context.Context, from, to time.Time) ([]meeting.MemberSummary, error) {
	if to.Before(from) {
		return nil, errors.New("invalid date range")
	}
	return u.repo.Summary(ctx, from, to)
}
