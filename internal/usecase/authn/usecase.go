// Package authn is the login flow: credential check against the member store,
// bearer token issuance on success.
package authn

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sangam-backend/internal/auth"
	"sangam-backend/internal/domain/member"
)

var ErrBadCredentials = errors.New("invalid email or password")

type Usecase struct {
	members member.Repository
	tokens  *auth.Manager
}

func NewUsecase(members member.Repository, tokens *auth.Manager) *Usecase {
	return &Usecase{members: members, tokens: tokens}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uint64    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	m, err := u.members.GetByEmail(ctx, in.Email)
	if err != nil {
		// same error for unknown email and wrong password
		return nil, ErrBadCredentials
	}
	if !m.IsActive {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrBadCredentials
	}

	now := time.Now().UTC()
	ident := auth.Identity{UserID: m.ID, Name: m.Name, Role: string(m.Role)}
	token, err := u.tokens.Issue(ident, now)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(u.tokens.TTL()),
		UserID:    m.ID,
		Name:      m.Name,
		Role:      string(m.Role),
	}, nil
}
