package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateBody(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateBody("Thought text", ""))
	assert.NoError(t, ValidateBody("Thought text", "x"))
	assert.NoError(t, ValidateBody("Thought text", strings.Repeat("a", MaxBodyLength)))
	assert.Error(t, ValidateBody("Thought text", strings.Repeat("a", MaxBodyLength+1)))

	// The bound counts runes, not bytes.
	assert.NoError(t, ValidateBody("Thought text", strings.Repeat("é", MaxBodyLength)))
}

func TestThoughtValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		th := Thought{ThoughtText: "hello", Username: "john_doe"}
		assert.NoError(t, th.Validate())
	})

	t.Run("missing username", func(t *testing.T) {
		t.Parallel()
		th := Thought{ThoughtText: "hello"}
		assert.Error(t, th.Validate())
	})

	t.Run("missing text", func(t *testing.T) {
		t.Parallel()
		th := Thought{Username: "john_doe"}
		assert.Error(t, th.Validate())
	})
}

func TestReactionValidate(t *testing.T) {
	t.Parallel()

	r := Reaction{ReactionBody: "nice", Username: "jane_smith"}
	assert.NoError(t, r.Validate())

	assert.Error(t, (&Reaction{Username: "jane_smith"}).Validate())
	assert.Error(t, (&Reaction{ReactionBody: "nice"}).Validate())
}

func TestThoughtFindReaction(t *testing.T) {
	t.Parallel()

	r1 := Reaction{ReactionID: primitive.NewObjectID()}
	r2 := Reaction{ReactionID: primitive.NewObjectID()}
	th := Thought{Reactions: []Reaction{r1, r2}}

	assert.Equal(t, 0, th.FindReaction(r1.ReactionID))
	assert.Equal(t, 1, th.FindReaction(r2.ReactionID))
	assert.Equal(t, -1, th.FindReaction(primitive.NewObjectID()))
}

func TestThoughtMarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("derives reactionCount", func(t *testing.T) {
		t.Parallel()
		th := Thought{
			ID:          primitive.NewObjectID(),
			ThoughtText: "hello",
			Username:    "john_doe",
			Reactions:   []Reaction{{ReactionID: primitive.NewObjectID()}},
		}
		b, err := json.Marshal(th)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, float64(1), out["reactionCount"])
	})

	t.Run("nil reactions become empty array", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(Thought{ThoughtText: "hello", Username: "john_doe"})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, []any{}, out["reactions"])
		assert.Equal(t, float64(0), out["reactionCount"])
	})
}

func TestAppErrorMessages(t *testing.T) {
	t.Parallel()

	nf := NewNotFoundError("User", "abc123")
	assert.Equal(t, "User abc123 not found", nf.Error())
	assert.Equal(t, CodeNotFound, nf.Code)

	val := NewValidationError("Username is required")
	assert.Equal(t, CodeValidation, val.Code)

	conflict := NewConflictError("Friend already added")
	assert.Equal(t, CodeConflict, conflict.Code)
}
