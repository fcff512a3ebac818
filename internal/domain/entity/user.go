package entity

import (
	"time"
)

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            int64     `json:"id" bson:"id"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"passwordHash"`
	Name          string    `json:"name" bson:"name"`
	Role          Role      `json:"role" bson:"role"`
	LineID        *string   `json:"lineId" bson:"lineId,omitempty"`
	WalletBalance int64     `json:"walletBalance" bson:"walletBalance"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) Validate() error {
	switch {
	case u == nil:
		return malformed("user", "document")
	case u.ID <= 0:
		return malformed("user", "id")
	case u.Email == "":
		return malformed("user", "email")
	case !u.Role.Valid():
		return malformed("user", "role")
	case u.WalletBalance < 0:
		return malformed("user", "walletBalance")
	case u.CreatedAt.IsZero():
		return malformed("user", "createdAt")
	}
	return nil
}

// UserUpdate holds the profile fields a user may change on themselves.
type UserUpdate struct {
	Name   *string
	LineID *string
}

// WalletSummary is derived from the user's balance and their payments.
type WalletSummary struct {
	WalletBalance int64 `json:"walletBalance"`
	TotalEarned   int64 `json:"totalEarned"`
	PendingPayout int64 `json:"pendingPayout"`
}
