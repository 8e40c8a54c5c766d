package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:app_user"`
	ID            string    `bun:"id,pk" json:"id"`
	Username      string    `bun:"username" json:"username"`
	CreatedAt     time.Time `bun:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
	IsNewUser     bool      `bun:"-" json:"is_new_user,omitempty"`
}

// UserFromAuth is the identity carried by a validated session token.
type UserFromAuth struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
