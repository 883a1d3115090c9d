package service

import (
	"context"
	"testing"

	"VidTube.com/cmd/interaction/dal/memdb"
	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/stretchr/testify/require"
)

func playlistFixture(t *testing.T) (*Service, *memdb.Store) {
	t.Helper()
	store := memdb.New()
	createUser(t, store, 1, "owner")
	createUser(t, store, 2, "fan")
	createVideo(t, store, 10, 1, 0)
	createVideo(t, store, 11, 2, 0)
	require.NoError(t, store.CreateVideo(context.Background(), &model.Video{ID: 12, OwnerID: 1, Title: "draft"}))
	return newService(t, store), store
}

func TestCreatePlaylistValidation(t *testing.T) {
	svc, _ := playlistFixture(t)
	ctx := context.Background()

	_, err := svc.CreatePlaylist(ctx, 0, PlaylistInput{Name: "x", VideoIDs: []int64{10}})
	require.ErrorIs(t, err, errno.UnauthorizedErr)
	_, err = svc.CreatePlaylist(ctx, 2, PlaylistInput{Name: "  ", VideoIDs: []int64{10}})
	require.ErrorIs(t, err, errno.ValidationErr)
	_, err = svc.CreatePlaylist(ctx, 2, PlaylistInput{Name: "empty"})
	require.ErrorIs(t, err, errno.ValidationErr)
	// 别人未发布的视频不能加入
	_, err = svc.CreatePlaylist(ctx, 2, PlaylistInput{Name: "sneaky", VideoIDs: []int64{10, 12}})
	require.ErrorIs(t, err, errno.NotFoundErr)
	_, err = svc.CreatePlaylist(ctx, 2, PlaylistInput{Name: "missing", VideoIDs: []int64{404}})
	require.ErrorIs(t, err, errno.NotFoundErr)
}

func TestUserPlaylistsOwnerOrPublic(t *testing.T) {
	svc, _ := playlistFixture(t)
	ctx := context.Background()

	fav, err := svc.CreatePlaylist(ctx, 1, PlaylistInput{
		Name: "  Favorites ", Description: "best", IsPublic: true, VideoIDs: []int64{10, 11, 12, 10},
	})
	require.NoError(t, err)
	require.Equal(t, "Favorites", fav.Name)
	_, err = svc.CreatePlaylist(ctx, 1, PlaylistInput{Name: "Drafts", VideoIDs: []int64{12}})
	require.NoError(t, err)

	own, err := svc.GetUserPlaylists(ctx, 1, 1, PageQuery{SortBy: "name", SortType: "asc"})
	require.NoError(t, err)
	require.Len(t, own.Items, 2)
	require.Equal(t, "Drafts", own.Items[0].Name)
	require.Equal(t, int64(1), own.Items[0].TotalVideos)
	require.Equal(t, int64(3), own.Items[1].TotalVideos)
	require.Equal(t, "owner", own.Items[1].Owner.Username)

	for _, caller := range []int64{0, 2} {
		public, err := svc.GetUserPlaylists(ctx, caller, 1, PageQuery{})
		require.NoError(t, err)
		require.Len(t, public.Items, 1)
		require.Equal(t, fav.ID, public.Items[0].ID)
		require.Equal(t, int64(2), public.Items[0].TotalVideos)
		require.NotNil(t, public.TotalItems)
		require.Equal(t, int64(1), *public.TotalItems)
	}

	_, err = svc.GetUserPlaylists(ctx, 2, 1, PageQuery{SortBy: "views"})
	require.ErrorIs(t, err, errno.ValidationErr)
	_, err = svc.GetUserPlaylists(ctx, 2, 404, PageQuery{})
	require.ErrorIs(t, err, errno.NotFoundErr)
}

func TestGetPlaylistByID(t *testing.T) {
	svc, _ := playlistFixture(t)
	ctx := context.Background()
	fav, err := svc.CreatePlaylist(ctx, 1, PlaylistInput{Name: "Favorites", IsPublic: true, VideoIDs: []int64{10, 11, 12}})
	require.NoError(t, err)
	drafts, err := svc.CreatePlaylist(ctx, 1, PlaylistInput{Name: "Drafts", VideoIDs: []int64{12}})
	require.NoError(t, err)

	got, err := svc.GetPlaylistByID(ctx, 2, fav.ID, PageQuery{})
	require.NoError(t, err)
	require.Equal(t, "Favorites", got.Name)
	require.Equal(t, "owner", got.Owner.Username)
	require.Equal(t, int64(2), got.TotalVideos)
	require.Len(t, got.Videos.Items, 2)
	owners := map[int64]string{}
	for _, v := range got.Videos.Items {
		owners[v.ID] = v.Owner.Username
		require.False(t, v.AddedAt.IsZero())
	}
	require.Equal(t, map[int64]string{10: "owner", 11: "fan"}, owners)

	mine, err := svc.GetPlaylistByID(ctx, 1, fav.ID, PageQuery{Limit: 2, UseCursor: true})
	require.NoError(t, err)
	require.Equal(t, int64(3), mine.TotalVideos)
	require.Len(t, mine.Videos.Items, 2)
	require.True(t, mine.Videos.HasMore)

	_, err = svc.GetPlaylistByID(ctx, 2, drafts.ID, PageQuery{})
	require.ErrorIs(t, err, errno.NotFoundErr)
	_, err = svc.GetPlaylistByID(ctx, 0, drafts.ID, PageQuery{})
	require.ErrorIs(t, err, errno.NotFoundErr)
	_, err = svc.GetPlaylistByID(ctx, 1, 404, PageQuery{})
	require.ErrorIs(t, err, errno.NotFoundErr)
	_, err = svc.GetPlaylistByID(ctx, 1, fav.ID, PageQuery{SortBy: "title"})
	require.ErrorIs(t, err, errno.ValidationErr)
}

func TestPlaylistMutationsRequireOwner(t *testing.T) {
	svc, _ := playlistFixture(t)
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 1, PlaylistInput{Name: "Mix", VideoIDs: []int64{10}})
	require.NoError(t, err)

	name := "mine now"
	require.ErrorIs(t, svc.AddVideoToPlaylist(ctx, 2, p.ID, 11), errno.ForbiddenErr)
	require.ErrorIs(t, svc.RemoveVideoFromPlaylist(ctx, 2, p.ID, 10), errno.ForbiddenErr)
	_, err = svc.UpdatePlaylist(ctx, 2, p.ID, repo.PlaylistPatch{Name: &name})
	require.ErrorIs(t, err, errno.ForbiddenErr)
	require.ErrorIs(t, svc.DeletePlaylist(ctx, 2, p.ID), errno.ForbiddenErr)
	require.ErrorIs(t, svc.DeletePlaylist(ctx, 0, p.ID), errno.UnauthorizedErr)
	require.ErrorIs(t, svc.DeletePlaylist(ctx, 1, 404), errno.NotFoundErr)

	got, err := svc.GetPlaylistByID(ctx, 1, p.ID, PageQuery{})
	require.NoError(t, err)
	require.Equal(t, "Mix", got.Name)
	require.Equal(t, int64(1), got.TotalVideos)
}

func TestPlaylistVideosAddRemove(t *testing.T) {
	svc, _ := playlistFixture(t)
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 1, PlaylistInput{Name: "Mix", VideoIDs: []int64{10}})
	require.NoError(t, err)

	require.ErrorIs(t, svc.AddVideoToPlaylist(ctx, 1, p.ID, 10), errno.ConflictErr)
	require.ErrorIs(t, svc.AddVideoToPlaylist(ctx, 1, p.ID, 404), errno.NotFoundErr)
	require.NoError(t, svc.AddVideoToPlaylist(ctx, 1, p.ID, 11))
	require.NoError(t, svc.AddVideoToPlaylist(ctx, 1, p.ID, 12))

	got, err := svc.GetPlaylistByID(ctx, 1, p.ID, PageQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(3), got.TotalVideos)

	require.NoError(t, svc.RemoveVideoFromPlaylist(ctx, 1, p.ID, 11))
	require.ErrorIs(t, svc.RemoveVideoFromPlaylist(ctx, 1, p.ID, 11), errno.NotFoundErr)
	require.ErrorIs(t, svc.RemoveVideoFromPlaylist(ctx, 1, p.ID, 0), errno.ValidationErr)

	got, err = svc.GetPlaylistByID(ctx, 1, p.ID, PageQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(2), got.TotalVideos)
}

func TestUpdateAndDeletePlaylist(t *testing.T) {
	svc, store := playlistFixture(t)
	ctx := context.Background()
	p, err := svc.CreatePlaylist(ctx, 1, PlaylistInput{Name: "Drafts", Description: "wip", VideoIDs: []int64{10, 12}})
	require.NoError(t, err)

	_, err = svc.UpdatePlaylist(ctx, 1, p.ID, repo.PlaylistPatch{})
	require.ErrorIs(t, err, errno.ValidationErr)
	blank := "   "
	_, err = svc.UpdatePlaylist(ctx, 1, p.ID, repo.PlaylistPatch{Name: &blank})
	require.ErrorIs(t, err, errno.ValidationErr)

	name, empty, public := "  Renamed ", "", true
	updated, err := svc.UpdatePlaylist(ctx, 1, p.ID, repo.PlaylistPatch{Name: &name, Description: &empty, IsPublic: &public})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Empty(t, updated.Description)
	require.True(t, updated.IsPublic)

	listed, err := svc.GetUserPlaylists(ctx, 2, 1, PageQuery{})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)

	require.NoError(t, svc.DeletePlaylist(ctx, 1, p.ID))
	_, err = svc.GetPlaylistByID(ctx, 1, p.ID, PageQuery{})
	require.ErrorIs(t, err, errno.NotFoundErr)
	counts, err := store.CountPlaylistVideos(ctx, []int64{p.ID}, 1)
	require.NoError(t, err)
	require.Zero(t, counts[p.ID])
}
