package model

import "fmt"

// Reaction identifies one of the fixed reaction kinds a post can receive.
type Reaction string

const (
	ReactionThumbsUp Reaction = "thumbsUp"
	ReactionHooray   Reaction = "hooray"
	ReactionHeart    Reaction = "heart"
	ReactionRocket   Reaction = "rocket"
	ReactionEyes     Reaction = "eyes"
	ReactionRabbit   Reaction = "rabbit"
)

// AllReactions lists every reaction kind in display order.
var AllReactions = []Reaction{
	ReactionThumbsUp,
	ReactionHooray,
	ReactionHeart,
	ReactionRocket,
	ReactionEyes,
	ReactionRabbit,
}

var reactionEmoji = map[Reaction]string{
	ReactionThumbsUp: "👍",
	ReactionHooray:   "🎉",
	ReactionHeart:    "❤️",
	ReactionRocket:   "🚀",
	ReactionEyes:     "👀",
	ReactionRabbit:   "🐰",
}

// Emoji returns the glyph used to render the reaction.
func (r Reaction) Emoji() string {
	return reactionEmoji[r]
}

// Valid reports whether r is one of the known reaction kinds.
func (r Reaction) Valid() bool {
	_, ok := reactionEmoji[r]
	return ok
}

// ParseReaction converts a reaction name into a Reaction.
func ParseReaction(name string) (Reaction, error) {
	r := Reaction(name)
	if !r.Valid() {
		return "", fmt.Errorf("unknown reaction %q", name)
	}
	return r, nil
}

// Reactions is the fixed-shape set of reaction counters on a post.
type Reactions struct {
	ThumbsUp int `json:"thumbsUp"`
	Hooray   int `json:"hooray"`
	Heart    int `json:"heart"`
	Rocket   int `json:"rocket"`
	Eyes     int `json:"eyes"`
	Rabbit   int `json:"rabbit"`
}

// Count returns the counter for the given reaction.
func (rs Reactions) Count(r Reaction) int {
	if p := rs.counter(r); p != nil {
		return *p
	}
	return 0
}

// Add returns a copy of rs with the counter for r incremented by one.
// Unknown reactions leave the counters unchanged.
func (rs Reactions) Add(r Reaction) Reactions {
	if p := rs.counter(r); p != nil {
		*p++
	}
	return rs
}

// counter returns a pointer into the receiver copy for r.
func (rs *Reactions) counter(r Reaction) *int {
	switch r {
	case ReactionThumbsUp:
		return &rs.ThumbsUp
	case ReactionHooray:
		return &rs.Hooray
	case ReactionHeart:
		return &rs.Heart
	case ReactionRocket:
		return &rs.Rocket
	case ReactionEyes:
		return &rs.Eyes
	case ReactionRabbit:
		return &rs.Rabbit
	default:
		return nil
	}
}
