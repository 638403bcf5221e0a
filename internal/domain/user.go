package domain

import (
	"errors"
	"time"
)

// User represents a wallet user.
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	City           string
	Role           Role
	HashedPassword string
	OTP            string
	OTPExpiry      time.Time
	Verified       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// Role represents a user's access level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// CanManage reports whether the role may act on another user's resources.
func (r Role) CanManage() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidOTP   = errors.New("invalid or expired otp")
)
