// Package models contains the document types and error taxonomy for the application.
package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// emailPattern is the basic local@domain.tld shape; anything stricter is the
// mail provider's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents an account document in the users collection.
//
// Thoughts is derived on read by querying the thoughts collection by
// username; it is never stored, so it cannot drift from the documents that
// actually reference this user. Friends holds one-directional references:
// adding a friend mutates only this user's list.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username  string               `bson:"username" json:"username"`
	Email     string               `bson:"email" json:"email"`
	Friends   []primitive.ObjectID `bson:"friends" json:"friends"`
	Thoughts  []primitive.ObjectID `bson:"-" json:"thoughts"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Validate normalizes and checks the user's own fields. Uniqueness of
// username and email is enforced against the collection, not here.
func (u *User) Validate() error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return NewValidationError("Username is required")
	}
	return ValidateEmail(u.Email)
}

// ValidateEmail checks the basic local@domain.tld shape.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("Invalid email address")
	}
	return nil
}

// HasFriend reports whether id is already in the friends set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// MarshalJSON adds the derived friendCount field and normalizes nil slices
// to empty arrays.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	a := alias(u)
	if a.Friends == nil {
		a.Friends = []primitive.ObjectID{}
	}
	if a.Thoughts == nil {
		a.Thoughts = []primitive.ObjectID{}
	}
	return json.Marshal(struct {
		alias
		FriendCount int `json:"friendCount"`
	}{a, len(u.Friends)})
}
