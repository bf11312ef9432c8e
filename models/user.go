package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Phone    string             `json:"phone" bson:"phone"` // unique natural key
	Password string             `json:"-" bson:"password"`  // bcrypt hash
	IsAdmin  bool               `json:"isAdmin" bson:"isAdmin"`
}

// UserUpdate lists the fields a profile update may touch. A nil field is
// left alone.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Password *string // already hashed
	IsAdmin  *bool
}
