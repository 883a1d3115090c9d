package model

import (
	"testing"

	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewLikeTarget(t *testing.T) {
	target, err := NewLikeTarget(0, 42, 0)
	require.NoError(t, err)
	require.Equal(t, TargetComment, target.Kind())
	require.Equal(t, int64(42), target.ID())
	require.True(t, target.Valid())

	cases := []struct {
		name                string
		video, comment, twt int64
	}{
		{"none", 0, 0, 0},
		{"video and comment", 1, 2, 0},
		{"video and tweet", 1, 0, 3},
		{"comment and tweet", 0, 2, 3},
		{"all three", 1, 2, 3},
		{"negative id", -5, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLikeTarget(c.video, c.comment, c.twt)
			require.True(t, errors.Is(err, errno.ValidationErr))
		})
	}
}

func TestLikeRoundTrip(t *testing.T) {
	like := NewLike(7, 100, TweetTarget(9))
	require.Equal(t, TargetTweet, like.TargetKind)
	require.Equal(t, TweetTarget(9), like.Target())
	require.False(t, LikeTarget{}.Valid())
}
