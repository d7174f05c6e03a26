package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	meetingDomain "sangam-backend/internal/domain/meeting"
)

type MeetingRepository struct{ db *gorm.DB }

func NewMeetingRepository(db *gorm.DB) *MeetingRepository { return &MeetingRepository{db: db} }

func (r *MeetingRepository) Create(ctx context.Context, m *meetingDomain.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MeetingRepository) GetByID(ctx context.Context, id uint64) (*meetingDomain.Meeting, error) {
	var out meetingDomain.Meeting
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, meetingDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *MeetingRepository) List(ctx context.Context) ([]meetingDomain.Meeting, error) {
	var out []meetingDomain.Meeting
	return out, r.db.WithContext(ctx).Order("meeting_date DESC").Find(&out).Error
}

func (r *MeetingRepository) Save(ctx context.Context, m *meetingDomain.Meeting) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MeetingRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&meetingDomain.Attendance{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&meetingDomain.Meeting{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return meetingDomain.ErrNotFound
		}
		return nil
	})
}

// ReplaceAttendance is the bulk replace-and-insert: the meeting's rows are
// wiped and the submitted set inserted atomically.
func (r *MeetingRepository) ReplaceAttendance(ctx context.Context, meetingID uint64, rows []meetingDomain.Attendance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&meetingDomain.Attendance{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].MeetingID = meetingID
		}
		return tx.Create(&rows).Error
	})
}

func (r *MeetingRepository) ListAttendance(ctx context.Context, meetingID uint64) ([]meetingDomain.Attendance, error) {
	var out []meetingDomain.Attendance
	return out, r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).
		Order("member_id ASC").Find(&out).Error
}

func (r *MeetingRepository) Summary(ctx context.Context, from, to time.Time) ([]meetingDomain.MemberSummary, error) {
	var out []meetingDomain.MemberSummary
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendances.member_id AS member_id, "+
			"SUM(CASE WHEN attendances.present THEN 1 ELSE 0 END) AS present, "+
			"SUM(CASE WHEN attendances.present THEN 0 ELSE 1 END) AS absent").
		Joins("JOIN meetings ON meetings.id = attendances.meeting_id").
		Where("meetings.meeting_date >= ? AND meetings.meeting_date <= ?", from, to).
		Group("attendances.member_id").
		Order("attendances.member_id ASC").
		Scan(&out).Error
	return out, err
}
