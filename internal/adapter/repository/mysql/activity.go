package mysql

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	activityDomain "sangam-backend/internal/domain/activity"
)

// sortColumns whitelists the sortable fields of the activity filter; anything
// else falls back to timestamp.
var sortColumns = map[string]string{
	"timestamp": "timestamp",
	"duration":  "duration_ms",
	"status":    "status_code",
	"action":    "action",
	"actor":     "actor_name",
}

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) Append(ctx context.Context, rec *activityDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ActivityRepository) Search(ctx context.Context, f activityDomain.Filter) (*activityDomain.Page, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&activityDomain.Record{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "timestamp"
	}
	dir := "ASC"
	if f.SortDesc || f.SortBy == "" {
		dir = "DESC"
	}

	var recs []activityDomain.Record
	err := q.Order(col + " " + dir + ", id " + dir).
		Offset((page - 1) * size).Limit(size).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &activityDomain.Page{
		Records:    recs,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

func (r *ActivityRepository) applyFilter(q *gorm.DB, f activityDomain.Filter) *gorm.DB {
	if f.ActorID != nil {
		q = q.Where("actor_id = ?", *f.ActorID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", *f.To)
	}
	if f.StatusMin != nil {
		q = q.Where("status_code >= ?", *f.StatusMin)
	}
	if f.StatusMax != nil {
		q = q.Where("status_code <= ?", *f.StatusMax)
	}
	if f.MinMS != nil {
		q = q.Where("duration_ms >= ?", *f.MinMS)
	}
	if f.MaxMS != nil {
		q = q.Where("duration_ms <= ?", *f.MaxMS)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(details) LIKE ?", like, like)
	}
	return q
}

func (r *ActivityRepository) Statistics(ctx context.Context, from, to time.Time) (*activityDomain.Stats, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&activityDomain.Record{}).
			Where("timestamp >= ? AND timestamp <= ?", from, to)
	}

	out := &activityDomain.Stats{}
	if err := base().Count(&out.Total).Error; err != nil {
		return nil, err
	}
	if out.Total == 0 {
		return out, nil
	}

	if err := base().Select("action AS `key`, COUNT(*) AS count").
		Group("action").Order("count DESC").Scan(&out.ByAction).Error; err != nil {
		return nil, err
	}
	if err := base().Select("entity_type AS `key`, COUNT(*) AS count").
		Group("entity_type").Order("count DESC").Scan(&out.ByEntity).Error; err != nil {
		return nil, err
	}
	if err := base().Select("actor_id, actor_name, COUNT(*) AS count").
		Group("actor_id, actor_name").Order("count DESC").Scan(&out.ByActor).Error; err != nil {
		return nil, err
	}
	// DATE() exists in both MySQL and SQLite, which keeps the tests honest.
	if err := base().Select("DATE(timestamp) AS day, COUNT(*) AS count").
		Group("DATE(timestamp)").Order("day ASC").Scan(&out.ByDay).Error; err != nil {
		return nil, err
	}

	var avg struct{ Avg float64 }
	if err := base().Select("AVG(duration_ms) AS avg").Scan(&avg).Error; err != nil {
		return nil, err
	}
	out.AvgDurationMS = avg.Avg

	var ok int64
	if err := base().Where("is_success = ?", true).Count(&ok).Error; err != nil {
		return nil, err
	}
	out.SuccessRate = float64(ok) / float64(out.Total)
	return out, nil
}
