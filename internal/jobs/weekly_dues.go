// Package jobs holds the background maintenance loops. One goroutine per job,
// ticker-driven, stopped by context cancellation or Stop().
package jobs

import (
	"context"
	"log"
	"time"

	"sangam-backend/internal/domain/member"
	"sangam-backend/internal/domain/payment"
)

// WeeklyDuesGenerator inserts the week's due row for every active member.
// Serial, at-least-once: a manual TriggerNow racing the scheduled run can scan
// twice, but the per-week existence check keeps rows unique per member.
// Per-member failures are logged and skipped; there are no retries.
type WeeklyDuesGenerator struct {
	payments payment.Repository
	members  member.Repository
	amount   float64
	interval time.Duration
	trigger  chan struct{}
	stopChan chan struct{}
}

func NewWeeklyDuesGenerator(payments payment.Repository, members member.Repository, amount float64, interval time.Duration) *WeeklyDuesGenerator {
	if interval <= 0 {
		interval = 7 * 24 * time.Hour
	}
	return &WeeklyDuesGenerator{
		payments: payments,
		members:  members,
		amount:   amount,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Start begins the loop: an immediate run, then one per interval. Exits when
// ctx is cancelled or Stop() is called.
func (g *WeeklyDuesGenerator) Start(ctx context.Context) {
	if g.amount <= 0 {
		log.Println("weekly dues: disabled (amount not configured)")
		return
	}
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	log.Printf("weekly dues generator started (interval %v, amount %.2f)", g.interval, g.amount)
	g.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			g.runOnce(ctx)
		case <-g.trigger:
			g.runOnce(ctx)
		case <-g.stopChan:
			log.Println("weekly dues generator stopped")
			return
		case <-ctx.Done():
			log.Println("weekly dues generator context cancelled")
			return
		}
	}
}

// Stop signals the loop to exit.
func (g *WeeklyDuesGenerator) Stop() { close(g.stopChan) }

// TriggerNow requests an extra run outside the schedule.
func (g *WeeklyDuesGenerator) TriggerNow() {
	select {
	case g.trigger <- struct{}{}:
	default:
	}
}

func (g *WeeklyDuesGenerator) runOnce(ctx context.Context) {
	week := WeekStart(time.Now().UTC())
	members, err := g.members.List(ctx, false)
	if err != nil {
		log.Printf("weekly dues: listing members failed: %v", err)
		return
	}

	created := 0
	for _, m := range members {
		exists, err := g.payments.HasWeeklyDue(ctx, m.ID, week)
		if err != nil {
			log.Printf("weekly dues: check for member %d failed: %v", m.ID, err)
			continue
		}
		if exists {
			continue
		}
		p := &payment.Payment{
			MemberID:    m.ID,
			Kind:        payment.KindWeekly,
			Amount:      g.amount,
			Status:      payment.StatusDue,
			PeriodStart: &week,
		}
		if err := g.payments.Create(ctx, p); err != nil {
			log.Printf("weekly dues: create for member %d failed: %v", m.ID, err)
			continue
		}
		created++
	}
	if created > 0 {
		log.Printf("weekly dues: created %d due row(s) for week %s", created, week.Format("2006-01-02"))
	}
}

// WeekStart returns the UTC Monday 00:00 of t's week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0
	return day.AddDate(0, 0, -offset)
}
