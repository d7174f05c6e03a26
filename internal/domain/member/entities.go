package member

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("member not found")

type Role string

const (
	RoleMember    Role = "member"
	RoleSecretary Role = "secretary"
	RolePresident Role = "president"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleMember, RoleSecretary, RolePresident:
		return true
	}
	return false
}

// Member rows are never hard-deleted: deactivation flips IsActive and stamps
// InactiveDate so historical payments and audit records keep a valid reference.
type Member struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	Name         string     `gorm:"size:128;column:name" json:"name"`
	Email        string     `gorm:"size:128;uniqueIndex:ux_members_email;column:email" json:"email"`
	Phone        string     `gorm:"size:32;column:phone" json:"phone"`
	Role         Role       `gorm:"size:16;column:role;default:'member'" json:"role"`
	PasswordHash string     `gorm:"size:128;column:password_hash" json:"-"`
	JoinDate     time.Time  `gorm:"column:join_date" json:"join_date"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	InactiveDate *time.Time `gorm:"column:inactive_date" json:"inactive_date,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }
