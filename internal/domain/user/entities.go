package user

import (
	"time"

	"sikopifasta-backend/internal/domain/apperr"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

var ErrNotFound = apperr.New(apperr.ErrNotFound, "user not found")

// Profile is the directory record for an authenticated identity.
type Profile struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UID       string    `gorm:"column:uid;size:128;not null;uniqueIndex:ux_users_uid" json:"uid"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	Name      string    `gorm:"column:name;size:255" json:"nama"`
	NIP       string    `gorm:"column:nip;size:64" json:"nip,omitempty"`
	WhatsApp  string    `gorm:"column:whatsapp;size:32" json:"whatsapp,omitempty"`
	Role      Role      `gorm:"column:role;size:16;not null;default:'user'" json:"role"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "users" }

func (p *Profile) IsAdmin() bool { return p != nil && p.IsActive && p.Role == RoleAdmin }

// Caller is the identity attached to a request after authentication.
type Caller struct {
	UID  string
	Role Role
}

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }
