// Package seed provides helpers to create demo and test data. These helpers
// are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds valid service inputs with generated content.
type Factory struct {
	rng *rand.Rand
}

// NewFactory creates a Factory with its own deterministic-when-seeded source.
func NewFactory(seed int64) *Factory {
	gofakeit.Seed(seed)
	return &Factory{rng: rand.New(rand.NewSource(seed))}
}

// BuildUser constructs a unique-enough user input.
func (f *Factory) BuildUser() service.CreateUserInput {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	return service.CreateUserInput{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
	}
}

// BuildThought constructs a thought input for the given author, with a
// created-at spread over the past maxDays days.
func (f *Factory) BuildThought(username string, maxDays int) service.CreateThoughtInput {
	if maxDays <= 0 {
		maxDays = 90
	}
	createdAt := time.Now().UTC().Add(-time.Duration(f.rng.Intn(maxDays*24)) * time.Hour)
	return service.CreateThoughtInput{
		ThoughtText: truncateBody(gofakeit.Sentence(f.rng.Intn(12) + 3)),
		Username:    username,
		CreatedAt:   &createdAt,
	}
}

// BuildReaction constructs a reaction input from the given reactor.
func (f *Factory) BuildReaction(username string) service.AddReactionInput {
	return service.AddReactionInput{
		ReactionBody: truncateBody(gofakeit.Sentence(f.rng.Intn(8) + 2)),
		Username:     username,
	}
}

// truncateBody keeps generated text inside the 280-character body bound.
func truncateBody(s string) string {
	runes := []rune(s)
	if len(runes) > 280 {
		return string(runes[:280])
	}
	return s
}
