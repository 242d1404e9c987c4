package customdict

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CustomDict wraps a Redis client holding a set of literal surface forms
// that a deployment should accept in addition to whatever a bundle's
// lexicon transducer already recognizes — words added by an administrator
// rather than baked into the compiled automaton. It has no notion of
// frequency or weight: membership is binary. The HTTP API checks it
// alongside Bundle.Spell rather than the bundle consulting it directly,
// since a CustomDict is scoped to a deployment while a Bundle is scoped to
// one archive.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a new CustomDict with the provided Redis client.
func New(client *redis.Client) *CustomDict {
	return &CustomDict{client: client, key: "custom_dict"}
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(word string) error {
	return cd.client.SAdd(context.Background(), cd.key, word).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(word string) error {
	return cd.client.SRem(context.Background(), cd.key, word).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All() ([]string, error) {
	return cd.client.SMembers(context.Background(), cd.key).Result()
}

// Contains reports whether word has been added to the custom dictionary.
func (cd *CustomDict) Contains(word string) (bool, error) {
	return cd.client.SIsMember(context.Background(), cd.key, word).Result()
}
