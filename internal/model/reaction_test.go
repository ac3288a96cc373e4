package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionsAddIncrementsOnlyTargetCounter(t *testing.T) {
	var rs Reactions
	for i := 0; i < 3; i++ {
		rs = rs.Add(ReactionRocket)
	}

	assert.Equal(t, 3, rs.Count(ReactionRocket))
	for _, r := range AllReactions {
		if r == ReactionRocket {
			continue
		}
		assert.Zero(t, rs.Count(r), "counter %s", r)
	}
}

func TestReactionsAddDoesNotMutateReceiver(t *testing.T) {
	orig := Reactions{Heart: 1}
	next := orig.Add(ReactionHeart)

	assert.Equal(t, 1, orig.Heart)
	assert.Equal(t, 2, next.Heart)
}

func TestReactionsAddUnknownIsNoop(t *testing.T) {
	rs := Reactions{Eyes: 2}
	assert.Equal(t, rs, rs.Add(Reaction("clap")))
}

func TestParseReaction(t *testing.T) {
	r, err := ParseReaction("hooray")
	require.NoError(t, err)
	assert.Equal(t, ReactionHooray, r)
	assert.Equal(t, "🎉", r.Emoji())

	_, err = ParseReaction("clap")
	assert.Error(t, err)
}
