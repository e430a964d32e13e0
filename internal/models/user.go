package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Account is an identity record in the "accounts" collection.
type Account struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	PasswordHash  string        `bson:"password_hash"`
	EmailVerified bool          `bson:"email_verified"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}

// User is the wire shape of POST /api/register. Password is accepted on input
// and never written back.
type User struct {
	ID            string `json:"id,omitempty"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
