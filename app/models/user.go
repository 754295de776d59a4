package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser   Role = "User"
	RoleSeller Role = "Seller"
	RoleAdmin  Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User is a stored identity. Email is the unique key; role and the
// seller-verification flag are mutated via idempotent upsert by email.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Role     Role               `bson:"role" json:"role"`
	Verified bool               `bson:"verified" json:"verified"` // sellers only
}
