package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// LoginRecord captures one successful authentication.
type LoginRecord struct {
	UserAgent  string    `json:"user_agent" bson:"user_agent"`
	RemoteAddr string    `json:"remote_addr" bson:"remote_addr"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// User is an account holder. EncodedPassword is a bcrypt hash and is never
// serialized to JSON.
type User struct {
	UserID          string        `json:"user_id" bson:"user_id"`
	Email           string        `json:"email" bson:"email"`
	EncodedPassword string        `json:"-" bson:"encoded_password"`
	Role            string        `json:"role" bson:"role"`
	FullName        string        `json:"full_name" bson:"full_name"`
	IsActive        bool          `json:"is_active" bson:"is_active"`
	Authorizations  []LoginRecord `json:"-" bson:"authorizations"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at"`
}

// NewUser creates an active user with a fresh identifier. The password must
// already be bcrypt-encoded.
func NewUser(email, encodedPassword, role string) *User {
	now := time.Now().UTC()
	return &User{
		UserID:          uuid.NewString(),
		Email:           email,
		EncodedPassword: encodedPassword,
		Role:            role,
		IsActive:        true,
		Authorizations:  []LoginRecord{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Profile is the subset of a user returned by the profile endpoint.
type Profile struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile projects a user onto its public profile.
func NewProfile(u *User) *Profile {
	return &Profile{
		Email:     u.Email,
		Role:      u.Role,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		UpdatedAt: u.UpdatedAt,
		CreatedAt: u.CreatedAt,
	}
}
