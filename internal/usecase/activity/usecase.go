package activity

import (
	"context"
	"errors"
	"time"

	"sangam-backend/internal/domain/activity"
)

type Usecase struct{ repo activity.Repository }

func NewUsecase(r activity.Repository) *Usecase { return &Usecase{repo: r} }

// FilterInput is the wire-level filter/sort/pagination descriptor.
type FilterInput struct {
	ActorID    *uint64 `json:"actor_id"`
	Action     string  `json:"action"`
	EntityType string  `json:"entity_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	StatusMin  *int    `json:"status_min"`
	StatusMax  *int    `json:"status_max"`
	MinMS      *int64  `json:"min_duration_ms"`
	MaxMS      *int64  `json:"max_duration_ms"`
	Search     string  `json:"search"`
	SortBy     string  `json:"sort_by"`
	SortDesc   bool    `json:"sort_desc"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	// IncludeSummary adds the aggregate statistics block for the same window.
	IncludeSummary bool `json:"include_summary"`
}

// AppliedFilters echoes back what the query actually filtered on.
type AppliedFilters struct {
	ActorID    *uint64 `json:"actor_id,omitempty"`
	Action     string  `json:"action,omitempty"`
	EntityType string  `json:"entity_type,omitempty"`
	StartDate  string  `json:"start_date,omitempty"`
	EndDate    string  `json:"end_date,omitempty"`
	StatusMin  *int    `json:"status_min,omitempty"`
	StatusMax  *int    `json:"status_max,omitempty"`
	MinMS      *int64  `json:"min_duration_ms,omitempty"`
	MaxMS      *int64  `json:"max_duration_ms,omitempty"`
	Search     string  `json:"search,omitempty"`
	SortBy     string  `json:"sort_by"`
	SortDesc   bool    `json:"sort_desc"`
}

type FilterResult struct {
	Page    activity.Page   `json:"page"`
	Applied AppliedFilters  `json:"applied_filters"`
	Summary *activity.Stats `json:"summary,omitempty"`
}

func (u *Usecase) Filter(ctx context.Context, in FilterInput) (*FilterResult, error) {
	from, to, err := parseWindow(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	f := activity.Filter{
		ActorID:    in.ActorID,
		Action:     in.Action,
		EntityType: in.EntityType,
		From:       from,
		To:         to,
		StatusMin:  in.StatusMin,
		StatusMax:  in.StatusMax,
		MinMS:      in.MinMS,
		MaxMS:      in.MaxMS,
		Search:     in.Search,
		SortBy:     in.SortBy,
		SortDesc:   in.SortDesc,
		Page:       in.Page,
		PageSize:   in.PageSize,
	}
	page, err := u.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &FilterResult{
		Page: *page,
		Applied: AppliedFilters{
			ActorID:    in.ActorID,
			Action:     in.Action,
			EntityType: in.EntityType,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			StatusMin:  in.StatusMin,
			StatusMax:  in.StatusMax,
			MinMS:      in.MinMS,
			MaxMS:      in.MaxMS,
			Search:     in.Search,
			SortBy:     in.SortBy,
			SortDesc:   in.SortDesc,
		},
	}
	if in.IncludeSummary {
		sFrom, sTo := windowOrDefault(from, to)
		stats, err := u.repo.Statistics(ctx, sFrom, sTo)
		if err != nil {
			return nil, err
		}
		out.Summary = stats
	}
	return out, nil
}

func (u *Usecase) Statistics(ctx context.Context, startDate, endDate string) (*activity.Stats, error) {
	from, to, err := parseWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}
	sFrom, sTo := windowOrDefault(from, to)
	return u.repo.Statistics(ctx, sFrom, sTo)
}

// parseWindow accepts RFC3339 or bare YYYY-MM-DD bounds; either side optional.
func parseWindow(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := parseDate(start, false)
		if err != nil {
			return nil, nil, errors.New("invalid start_date")
		}
		from = &t
	}
	if end != "" {
		t, err := parseDate(end, true)
		if err != nil {
			return nil, nil, errors.New("invalid end_date")
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, errors.New("end_date before start_date")
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}

// windowOrDefault fills missing statistics bounds with "last 30 days".
func windowOrDefault(from, to *time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	end := now
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	return start, end
}
