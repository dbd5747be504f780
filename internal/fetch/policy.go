// Package fetch wraps the card and tutorial repositories with request
// deduplication, retries and revalidation, addressed by (operation,
// parameters, language) keys.
package fetch

import (
	"net/url"
	"strings"
	"time"

	"github.com/arcanaland/arcanum/internal/lang"
)

// Class groups operations that share a policy.
type Class int

const (
	Listing Class = iota
	Entity
	Random
	Tutorial
)

func (c Class) String() string {
	switch c {
	case Listing:
		return "listing"
	case Entity:
		return "entity"
	case Random:
		return "random"
	case Tutorial:
		return "tutorial"
	}
	return "unknown"
}

// Policy controls caching and retries for one class.
type Policy struct {
	RevalidateOnFocus     bool
	RevalidateOnReconnect bool
	// Dedupe is how long a result is served without calling the store.
	// Zero disables both caching and joining of concurrent calls.
	Dedupe  time.Duration
	Retries int
}

// RetryInterval is the fixed wait between retries of a transport failure.
const RetryInterval = 5 * time.Second

const dedupeWindow = 10 * time.Minute

// Policies holds the policy of every class. Random draws are never deduped.
var Policies = map[Class]Policy{
	Listing:  {RevalidateOnReconnect: true, Dedupe: dedupeWindow, Retries: 3},
	Entity:   {RevalidateOnReconnect: true, Dedupe: dedupeWindow, Retries: 3},
	Random:   {Retries: 3},
	Tutorial: {RevalidateOnReconnect: true, Dedupe: dedupeWindow, Retries: 3},
}

// Op names a repository read.
type Op string

const (
	OpCardsAll     Op = "cards.all"
	OpCardsByKey   Op = "cards.key"
	OpCardsByName  Op = "cards.name"
	OpCardsBySuit  Op = "cards.suit"
	OpCardsByType  Op = "cards.type"
	OpCardsSearch  Op = "cards.search"
	OpCardsRandom  Op = "cards.random"
	OpCardsRandomN Op = "cards.random_n"

	OpLegacyAll     Op = "cards.legacy.all"
	OpLegacyByKey   Op = "cards.legacy.key"
	OpLegacyByName  Op = "cards.legacy.name"
	OpLegacyBySuit  Op = "cards.legacy.suit"
	OpLegacyByType  Op = "cards.legacy.type"
	OpLegacySearch  Op = "cards.legacy.search"
	OpLegacyRandom  Op = "cards.legacy.random"
	OpLegacyRandomN Op = "cards.legacy.random_n"

	OpTutorialsAll    Op = "tutorials.all"
	OpTutorialSection Op = "tutorials.section"
)

var opClasses = map[Op]Class{
	OpCardsAll:        Listing,
	OpCardsBySuit:     Listing,
	OpCardsByType:     Listing,
	OpCardsSearch:     Listing,
	OpLegacyAll:       Listing,
	OpLegacyBySuit:    Listing,
	OpLegacyByType:    Listing,
	OpLegacySearch:    Listing,
	OpCardsByKey:      Entity,
	OpCardsByName:     Entity,
	OpLegacyByKey:     Entity,
	OpLegacyByName:    Entity,
	OpCardsRandom:     Random,
	OpCardsRandomN:    Random,
	OpLegacyRandom:    Random,
	OpLegacyRandomN:   Random,
	OpTutorialsAll:    Tutorial,
	OpTutorialSection: Tutorial,
}

// Class returns the class of op; unknown ops are treated as random draws so
// they are never cached.
func (op Op) Class() Class {
	if c, ok := opClasses[op]; ok {
		return c
	}
	return Random
}

// Policy returns the policy of op's class.
func (op Op) Policy() Policy {
	return Policies[op.Class()]
}

// Key addresses one read.
type Key struct {
	Op     Op
	Params []string
	Lang   lang.Code
}

// NewKey builds a key.
func NewKey(op Op, l lang.Code, params ...string) Key {
	return Key{Op: op, Params: params, Lang: l}
}

// String renders the key as op|param...|lang. Params are query-escaped so a
// search for "a|b" cannot collide with two params.
func (k Key) String() string {
	parts := make([]string, 0, len(k.Params)+2)
	parts = append(parts, string(k.Op))
	for _, p := range k.Params {
		parts = append(parts, url.QueryEscape(p))
	}
	parts = append(parts, string(k.Lang))
	return strings.Join(parts, "|")
}
