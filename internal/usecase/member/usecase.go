package member

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sangam-backend/internal/domain/member"
)

type Usecase struct{ repo member.Repository }

func NewUsecase(r member.Repository) *Usecase { return &Usecase{repo: r} }

type CreateMemberInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateMemberInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (u *Usecase) Create(ctx context.Context, in CreateMemberInput) (*member.Member, error) {
	role := in.Role
	if role == "" {
		role = string(member.RoleMember)
	}
	if !member.ValidRole(role) {
		return nil, errors.New("invalid role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	m := &member.Member{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         member.Role(role),
		PasswordHash: string(hash),
		JoinDate:     time.Now().UTC(),
		IsActive:     true,
	}
	if err := u.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*member.Member, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context, includeInactive bool) ([]member.Member, error) {
	return u.repo.List(ctx, includeInactive)
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateMemberInput) (*member.Member, error) {
	m, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		m.Name = in.Name
	}
	if in.Phone != "" {
		m.Phone = in.Phone
	}
	if in.Role != "" {
		if !member.ValidRole(in.Role) {
			return nil, errors.New("invalid role")
		}
		m.Role = member.Role(in.Role)
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		m.PasswordHash = string(hash)
	}
	if err := u.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Deactivate is the delete endpoint's behaviour: members are soft-deleted so
// payments, loans and activity records keep a valid reference.
func (u *Usecase) Deactivate(ctx context.Context, id uint64) error {
	return u.repo.Deactivate(ctx, id, time.Now().UTC())
}
