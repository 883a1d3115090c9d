package service

import (
	"context"
	"testing"

	"VidTube.com/cmd/interaction/dal/memdb"
	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newService(t, memdb.New())
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterInput{Username: "Alice", Email: "alice@example.com", FullName: "Alice A", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.NotEqual(t, "pw", u.Password)

	_, err = svc.RegisterUser(ctx, RegisterInput{Username: "alice", Email: "other@example.com", FullName: "x", Password: "pw"})
	require.ErrorIs(t, err, errno.ConflictErr)
	_, err = svc.RegisterUser(ctx, RegisterInput{Username: "bob", Email: "bob", FullName: "x", Password: "pw"})
	require.ErrorIs(t, err, errno.ValidationErr)

	got, err := svc.Authenticate(ctx, "ALICE", "pw")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	got, err = svc.Authenticate(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, errno.UnauthorizedErr)
	_, err = svc.Authenticate(ctx, "nobody", "pw")
	require.ErrorIs(t, err, errno.NotFoundErr)
}

func TestPublishAndMutateVideo(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "other")
	producer := &recordingProducer{}
	svc := newService(t, store, WithProducer(producer))
	ctx := context.Background()

	_, err := svc.PublishVideo(ctx, 1, PublishVideoInput{Title: "t"})
	require.ErrorIs(t, err, errno.ValidationErr)

	v, err := svc.PublishVideo(ctx, 1, PublishVideoInput{
		Title: "title", Description: "desc", VideoFile: "v.mp4", Thumbnail: "t.png", Duration: 12.5,
	})
	require.NoError(t, err)
	require.True(t, v.IsPublished)

	title := "new title"
	_, err = svc.UpdateVideo(ctx, 2, v.ID, repo.VideoPatch{Title: &title})
	require.ErrorIs(t, err, errno.ForbiddenErr)
	empty := " "
	_, err = svc.UpdateVideo(ctx, 1, v.ID, repo.VideoPatch{Title: &empty})
	require.ErrorIs(t, err, errno.ValidationErr)
	updated, err := svc.UpdateVideo(ctx, 1, v.ID, repo.VideoPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "desc", updated.Description)

	toggled, err := svc.TogglePublishStatus(ctx, 1, v.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsPublished)

	require.ErrorIs(t, svc.DeleteVideo(ctx, 2, v.ID), errno.ForbiddenErr)
	require.NoError(t, svc.DeleteVideo(ctx, 1, v.ID))
	require.ErrorIs(t, svc.DeleteVideo(ctx, 1, v.ID), errno.NotFoundErr)

	require.Len(t, producer.videos, 4)
	require.Equal(t, mq.VideoUpserted, producer.videos[0].Type)
	require.Equal(t, "new title", producer.videos[1].Title)
	require.False(t, producer.videos[2].IsPublished)
	require.Equal(t, mq.VideoDeleted, producer.videos[3].Type)
}

func TestDeleteVideoCascades(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "fan")
	createVideo(t, store, 10, 1, 0)
	svc := newService(t, store)
	ctx := context.Background()

	c, err := svc.AddComment(ctx, 2, 10, "nice")
	require.NoError(t, err)
	_, err = svc.ToggleCommentLike(ctx, 1, c.ID)
	require.NoError(t, err)
	_, err = svc.ToggleVideoLike(ctx, 2, 10)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVideo(ctx, 1, 10))

	_, err = svc.ToggleCommentLike(ctx, 1, c.ID)
	require.ErrorIs(t, err, errno.NotFoundErr)
	stats, err := svc.GetChannelStats(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, stats.TotalLikes)
	require.Zero(t, stats.TotalVideos)
}

func TestCommentAndTweetOwnership(t *testing.T) {
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "other")
	createVideo(t, store, 10, 1, 0)
	svc := newService(t, store)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, 2, 10, "  ")
	require.ErrorIs(t, err, errno.ValidationErr)
	_, err = svc.AddComment(ctx, 0, 10, "hi")
	require.ErrorIs(t, err, errno.UnauthorizedErr)

	c, err := svc.AddComment(ctx, 2, 10, "hi")
	require.NoError(t, err)
	_, err = svc.UpdateComment(ctx, 1, c.ID, "edited")
	require.ErrorIs(t, err, errno.ForbiddenErr)
	edited, err := svc.UpdateComment(ctx, 2, c.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", edited.Content)
	require.ErrorIs(t, svc.DeleteComment(ctx, 1, c.ID), errno.ForbiddenErr)
	require.NoError(t, svc.DeleteComment(ctx, 2, c.ID))

	tw, err := svc.CreateTweet(ctx, 1, "hello")
	require.NoError(t, err)
	_, err = svc.UpdateTweet(ctx, 2, tw.ID, "hijack")
	require.ErrorIs(t, err, errno.ForbiddenErr)
	_, err = svc.UpdateTweet(ctx, 1, tw.ID, "hello again")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTweet(ctx, 1, tw.ID))
	require.ErrorIs(t, svc.DeleteTweet(ctx, 1, tw.ID), errno.NotFoundErr)
}
