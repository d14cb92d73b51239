package entity

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User mirrors an identity issued by the external provider. ID is the provider uid.
type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Name     string `json:"name" firestore:"name"`
	ImageURL string `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role     Role   `json:"role" firestore:"role"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IdentityProfile is what the identity provider knows about a uid.
type IdentityProfile struct {
	UID      string
	Email    string
	Name     string
	ImageURL string
	Phone    string
}
