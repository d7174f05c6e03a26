package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	memberDomain "sangam-backend/internal/domain/member"
)

func makeMember(name, email string) *memberDomain.Member {
	return &memberDomain.Member{
		Name:     name,
		Email:    email,
		Role:     memberDomain.RoleMember,
		JoinDate: time.Now().UTC(),
		IsActive: true,
	}
}

func TestMemberCreateAndGet(t *testing.T) {
	db := openTestDB(t, &memberDomain.Member{})
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := makeMember("Asha", "asha@example.com")
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID == 0 {
		t.Fatalf("Create did not set ID")
	}

	byID, err := repo.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "asha@example.com" {
		t.Errorf("unexpected member: %+v", byID)
	}

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != m.ID {
		t.Errorf("GetByEmail returned different row: %+v", byEmail)
	}
}

func TestMemberGet_NotFound(t *testing.T) {
	db := openTestDB(t, &memberDomain.Member{})
	repo := NewMemberRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 404); !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("GetByID: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("GetByEmail: want ErrNotFound, got %v", err)
	}
}

func TestMemberDeactivateKeepsRow(t *testing.T) {
	db := openTestDB(t, &memberDomain.Member{})
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := makeMember("Binu", "binu@example.com")
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	when := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.Deactivate(ctx, m.ID, when); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	// the row survives; only the flags change
	got, err := repo.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID after deactivate: %v", err)
	}
	if got.IsActive {
		t.Errorf("IsActive still true")
	}
	if got.InactiveDate == nil || !got.InactiveDate.Equal(when) {
		t.Errorf("InactiveDate = %v, want %v", got.InactiveDate, when)
	}

	// deactivating twice reports not found (already inactive)
	if err := repo.Deactivate(ctx, m.ID, when); !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("second Deactivate: want ErrNotFound, got %v", err)
	}
}

func TestMemberListFiltersInactive(t *testing.T) {
	db := openTestDB(t, &memberDomain.Member{})
	repo := NewMemberRepository(db)
	ctx := context.Background()

	active := makeMember("Active", "active@example.com")
	gone := makeMember("Gone", "gone@example.com")
	for _, m := range []*memberDomain.Member{active, gone} {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Deactivate(ctx, gone.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	onlyActive, err := repo.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0].ID != active.ID {
		t.Errorf("active-only list wrong: %+v", onlyActive)
	}

	all, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d members, want 2", len(all))
	}
}
