package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// RegisterRequest creates a user account plus its Student or Professor profile.
type RegisterRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	Address    *string `json:"address,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	UserType   string  `json:"user_type" validate:"required,oneof=Student Professor"`

	// Student specific.
	Year        *int    `json:"year,omitempty" validate:"omitempty,min=1,max=10"`
	ProgrammeID *string `json:"programme_id,omitempty"`

	// Professor specific.
	Specialization *string `json:"specialization,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`

	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AuthResponse returns the issued token and the authenticated identity.
type AuthResponse struct {
	Token              string    `json:"token"`
	UserType           UserType  `json:"user_type"`
	UserID             string    `json:"user_id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	RegistrationNumber string    `json:"registration_number"`
	ProfileID          *string   `json:"profile_id,omitempty"`
	ExpiresAt          time.Time `json:"expires_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID             string   `json:"user_id"`
	Email              string   `json:"email"`
	FullName           string   `json:"full_name"`
	UserType           UserType `json:"user_type"`
	RegistrationNumber string   `json:"registration_number"`
	ProfileID          *string  `json:"profile_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor identifies the authenticated caller of a mutation.
type Actor struct {
	UserID    string
	UserType  UserType
	ProfileID string
}

// ActorFromClaims derives the acting identity from token claims.
func ActorFromClaims(claims *JWTClaims) Actor {
	actor := Actor{}
	if claims == nil {
		return actor
	}
	actor.UserID = claims.UserID
	actor.UserType = claims.UserType
	if claims.ProfileID != nil {
		actor.ProfileID = *claims.ProfileID
	}
	return actor
}

// IsDepartmentAdmin reports whether the actor carries an admin profile.
func (a Actor) IsDepartmentAdmin() bool {
	return a.UserType == UserTypeDepartmentAdmin && a.ProfileID != ""
}
