package models

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxBodyLength bounds thought and reaction bodies.
const MaxBodyLength = 280

// Reaction is embedded in its owning thought document and has no independent
// storage identity. ReactionID is unique within the owning thought only.
type Reaction struct {
	ReactionID   primitive.ObjectID `bson:"reactionId" json:"reactionId"`
	ReactionBody string             `bson:"reactionBody" json:"reactionBody"`
	Username     string             `bson:"username" json:"username"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Validate checks the reaction's fields. The reacting username is not
// checked for existence.
func (r *Reaction) Validate() error {
	if err := ValidateBody("Reaction body", r.ReactionBody); err != nil {
		return err
	}
	if r.Username == "" {
		return NewValidationError("Username is required")
	}
	return nil
}

// Thought represents a post document in the thoughts collection. Reactions
// are value-owned: mutating the thought mutates them, and nothing else may
// reference one.
type Thought struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ThoughtText string             `bson:"thoughtText" json:"thoughtText"`
	Username    string             `bson:"username" json:"username"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Reactions   []Reaction         `bson:"reactions" json:"reactions"`
}

// Validate checks the thought's own fields. Author existence is a
// creation-time rule enforced by the service layer.
func (t *Thought) Validate() error {
	if err := ValidateBody("Thought text", t.ThoughtText); err != nil {
		return err
	}
	if t.Username == "" {
		return NewValidationError("Username is required")
	}
	return nil
}

// FindReaction returns the index of the reaction with the given id, or -1.
func (t *Thought) FindReaction(id primitive.ObjectID) int {
	for i, r := range t.Reactions {
		if r.ReactionID == id {
			return i
		}
	}
	return -1
}

// MarshalJSON adds the derived reactionCount field and normalizes a nil
// reaction slice to an empty array.
func (t Thought) MarshalJSON() ([]byte, error) {
	type alias Thought
	a := alias(t)
	if a.Reactions == nil {
		a.Reactions = []Reaction{}
	}
	return json.Marshal(struct {
		alias
		ReactionCount int `json:"reactionCount"`
	}{a, len(t.Reactions)})
}

// ValidateBody checks a text body against the [1, MaxBodyLength] rune bound.
func ValidateBody(field, body string) error {
	n := utf8.RuneCountInString(body)
	if n == 0 {
		return NewValidationError(field + " is required")
	}
	if n > MaxBodyLength {
		return NewValidationError(fmt.Sprintf("%s too long (max %d characters)", field, MaxBodyLength))
	}
	return nil
}
