package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/pkg/errors"
)

type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   string
	Thumbnail   string
	Duration    float64
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errno.ValidationErr.WithMessage(field + " is required")
	}
	return nil
}

func authorized(callerID int64) error {
	if callerID <= 0 {
		return errno.UnauthorizedErr
	}
	return nil
}

func owns(callerID, ownerID int64) error {
	if callerID != ownerID {
		return errno.ForbiddenErr
	}
	return nil
}

func videoEvent(eventType string, v *model.Video) *mq.VideoEvent {
	e := mq.NewVideoEvent(eventType, v.ID)
	e.OwnerID = v.OwnerID
	e.Title = v.Title
	e.Description = v.Description
	e.IsPublished = v.IsPublished
	e.CreatedAt = v.CreatedAt
	return e
}

// PublishVideo 新视频默认已发布
func (s *Service) PublishVideo(ctx context.Context, callerID int64, in PublishVideoInput) (*model.Video, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	for _, f := range [][2]string{{"title", in.Title}, {"description", in.Description}, {"videoFile", in.VideoFile}, {"thumbnail", in.Thumbnail}} {
		if err := required(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if in.Duration < 0 {
		return nil, errno.ValidationErr.WithMessage("duration must not be negative")
	}
	if _, err := s.getUser(ctx, callerID, "owner"); err != nil {
		return nil, err
	}
	v := &model.Video{
		ID:          s.newID(),
		OwnerID:     callerID,
		VideoFile:   in.VideoFile,
		Thumbnail:   in.Thumbnail,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Duration:    in.Duration,
		IsPublished: true,
	}
	tctx, cancel := s.bounded(ctx)
	err := s.store.CreateVideo(tctx, v)
	cancel()
	if err != nil {
		return nil, storeErr(ctx, err, "video")
	}
	s.publishVideo(ctx, videoEvent(mq.VideoUpserted, v))
	return v, nil
}

// UpdateVideo 只修改非 nil 的字段，修改后的字段不能为空
func (s *Service) UpdateVideo(ctx context.Context, callerID, videoID int64, patch repo.VideoPatch) (*model.Video, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	if patch.Title == nil && patch.Description == nil && patch.Thumbnail == nil {
		return nil, errno.ValidationErr.WithMessage("nothing to update")
	}
	for name, p := range map[string]*string{"title": patch.Title, "description": patch.Description, "thumbnail": patch.Thumbnail} {
		if p == nil {
			continue
		}
		if err := required(name, *p); err != nil {
			return nil, err
		}
	}
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := owns(callerID, v.OwnerID); err != nil {
		return nil, err
	}
	tctx, cancel := s.bounded(ctx)
	v, err = s.store.UpdateVideo(tctx, videoID, patch)
	cancel()
	if err != nil {
		return nil, storeErr(ctx, err, "video")
	}
	s.publishVideo(ctx, videoEvent(mq.VideoUpserted, v))
	return v, nil
}

func (s *Service) DeleteVideo(ctx context.Context, callerID, videoID int64) error {
	if err := authorized(callerID); err != nil {
		return err
	}
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return err
	}
	if err := owns(callerID, v.OwnerID); err != nil {
		return err
	}
	tctx, cancel := s.bounded(ctx)
	err = s.store.DeleteVideo(tctx, videoID, s.cascade())
	cancel()
	if err != nil {
		return storeErr(ctx, err, "video")
	}
	s.publishVideo(ctx, mq.NewVideoEvent(mq.VideoDeleted, videoID))
	return nil
}

func (s *Service) TogglePublishStatus(ctx context.Context, callerID, videoID int64) (*model.Video, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := owns(callerID, v.OwnerID); err != nil {
		return nil, err
	}
	tctx, cancel := s.bounded(ctx)
	v, err = s.store.TogglePublished(tctx, videoID)
	cancel()
	if err != nil {
		return nil, storeErr(ctx, err, "video")
	}
	s.publishVideo(ctx, videoEvent(mq.VideoUpserted, v))
	return v, nil
}

// AddComment 只能评论调用方可见的视频
func (s *Service) AddComment(ctx context.Context, callerID, videoID int64, content string) (*model.Comment, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	if err := required("content", content); err != nil {
		return nil, err
	}
	if _, err := s.visibleVideo(ctx, callerID, videoID); err != nil {
		return nil, err
	}
	c := &model.Comment{
		ID:      s.newID(),
		VideoID: videoID,
		OwnerID: callerID,
		Content: strings.TrimSpace(content),
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.store.CreateComment(tctx, c); err != nil {
		return nil, storeErr(ctx, err, "comment")
	}
	return c, nil
}

func (s *Service) ownedComment(ctx context.Context, callerID, commentID int64) error {
	if err := authorized(callerID); err != nil {
		return err
	}
	if commentID <= 0 {
		return errno.ValidationErr.WithMessage("invalid comment id")
	}
	tctx, cancel := s.bounded(ctx)
	c, err := s.store.GetComment(tctx, commentID)
	cancel()
	if err != nil {
		return storeErr(ctx, err, "comment")
	}
	return owns(callerID, c.OwnerID)
}

func (s *Service) UpdateComment(ctx context.Context, callerID, commentID int64, content string) (*model.Comment, error) {
	if err := required("content", content); err != nil {
		return nil, err
	}
	if err := s.ownedComment(ctx, callerID, commentID); err != nil {
		return nil, err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	c, err := s.store.UpdateComment(tctx, commentID, strings.TrimSpace(content))
	if err != nil {
		return nil, storeErr(ctx, err, "comment")
	}
	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, callerID, commentID int64) error {
	if err := s.ownedComment(ctx, callerID, commentID); err != nil {
		return err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	return storeErr(ctx, s.store.DeleteComment(tctx, commentID, s.cascade()), "comment")
}

func (s *Service) CreateTweet(ctx context.Context, callerID int64, content string) (*model.Tweet, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	if err := required("content", content); err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, callerID, "owner"); err != nil {
		return nil, err
	}
	t := &model.Tweet{ID: s.newID(), OwnerID: callerID, Content: strings.TrimSpace(content)}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.store.CreateTweet(tctx, t); err != nil {
		return nil, storeErr(ctx, err, "tweet")
	}
	return t, nil
}

func (s *Service) ownedTweet(ctx context.Context, callerID, tweetID int64) error {
	if err := authorized(callerID); err != nil {
		return err
	}
	if tweetID <= 0 {
		return errno.ValidationErr.WithMessage("invalid tweet id")
	}
	tctx, cancel := s.bounded(ctx)
	t, err := s.store.GetTweet(tctx, tweetID)
	cancel()
	if err != nil {
		return storeErr(ctx, err, "tweet")
	}
	return owns(callerID, t.OwnerID)
}

func (s *Service) UpdateTweet(ctx context.Context, callerID, tweetID int64, content string) (*model.Tweet, error) {
	if err := required("content", content); err != nil {
		return nil, err
	}
	if err := s.ownedTweet(ctx, callerID, tweetID); err != nil {
		return nil, err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	t, err := s.store.UpdateTweet(tctx, tweetID, strings.TrimSpace(content))
	if err != nil {
		return nil, storeErr(ctx, err, "tweet")
	}
	return t, nil
}

func (s *Service) DeleteTweet(ctx context.Context, callerID, tweetID int64) error {
	if err := s.ownedTweet(ctx, callerID, tweetID); err != nil {
		return err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	return storeErr(ctx, s.store.DeleteTweet(tctx, tweetID, s.cascade()), "tweet")
}

type PlaylistInput struct {
	Name        string
	Description string
	IsPublic    bool
	VideoIDs    []int64
}

// CreatePlaylist 至少包含一个视频，且每个视频都必须对创建者可见
func (s *Service) CreatePlaylist(ctx context.Context, callerID int64, in PlaylistInput) (*model.Playlist, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	ids := uniq(in.VideoIDs)
	if len(ids) == 0 {
		return nil, errno.ValidationErr.WithMessage("at least one video is required")
	}
	if _, err := s.getUser(ctx, callerID, "owner"); err != nil {
		return nil, err
	}
	p := &model.Playlist{
		ID:          s.newID(),
		OwnerID:     callerID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		IsPublic:    in.IsPublic,
	}
	entries := make([]*model.PlaylistVideo, 0, len(ids))
	for _, id := range ids {
		if _, err := s.visibleVideo(ctx, callerID, id); err != nil {
			return nil, err
		}
		entries = append(entries, &model.PlaylistVideo{ID: s.newID(), PlaylistID: p.ID, VideoID: id})
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	if err := s.store.CreatePlaylist(tctx, p, entries); err != nil {
		return nil, storeErr(ctx, err, "playlist")
	}
	return p, nil
}

func (s *Service) ownedPlaylist(ctx context.Context, callerID, playlistID int64) (*model.Playlist, error) {
	if err := authorized(callerID); err != nil {
		return nil, err
	}
	if playlistID <= 0 {
		return nil, errno.ValidationErr.WithMessage("invalid playlist id")
	}
	tctx, cancel := s.bounded(ctx)
	p, err := s.store.GetPlaylist(tctx, playlistID)
	cancel()
	if err != nil {
		return nil, storeErr(ctx, err, "playlist")
	}
	if err := owns(callerID, p.OwnerID); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePlaylist 名称修改后不能为空，描述可以清空
func (s *Service) UpdatePlaylist(ctx context.Context, callerID, playlistID int64, patch repo.PlaylistPatch) (*model.Playlist, error) {
	if patch.Name == nil && patch.Description == nil && patch.IsPublic == nil {
		return nil, errno.ValidationErr.WithMessage("nothing to update")
	}
	if patch.Name != nil {
		if err := required("name", *patch.Name); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}
	if _, err := s.ownedPlaylist(ctx, callerID, playlistID); err != nil {
		return nil, err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	p, err := s.store.UpdatePlaylist(tctx, playlistID, patch)
	if err != nil {
		return nil, storeErr(ctx, err, "playlist")
	}
	return p, nil
}

func (s *Service) DeletePlaylist(ctx context.Context, callerID, playlistID int64) error {
	if _, err := s.ownedPlaylist(ctx, callerID, playlistID); err != nil {
		return err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	return storeErr(ctx, s.store.DeletePlaylist(tctx, playlistID), "playlist")
}

// AddVideoToPlaylist 同一视频重复加入返回冲突
func (s *Service) AddVideoToPlaylist(ctx context.Context, callerID, playlistID, videoID int64) error {
	if _, err := s.ownedPlaylist(ctx, callerID, playlistID); err != nil {
		return err
	}
	if _, err := s.visibleVideo(ctx, callerID, videoID); err != nil {
		return err
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	err := s.store.AddPlaylistVideo(tctx, &model.PlaylistVideo{ID: s.newID(), PlaylistID: playlistID, VideoID: videoID})
	if errors.Is(err, repo.ErrDuplicate) {
		return errno.ConflictErr.WithMessage("video is already in the playlist")
	}
	return storeErr(ctx, err, "playlist")
}

func (s *Service) RemoveVideoFromPlaylist(ctx context.Context, callerID, playlistID, videoID int64) error {
	if _, err := s.ownedPlaylist(ctx, callerID, playlistID); err != nil {
		return err
	}
	if videoID <= 0 {
		return errno.ValidationErr.WithMessage("invalid video id")
	}
	tctx, cancel := s.bounded(ctx)
	defer cancel()
	removed, err := s.store.RemovePlaylistVideo(tctx, playlistID, videoID)
	if err != nil {
		return storeErr(ctx, err, "playlist")
	}
	if !removed {
		return errno.NotFoundErr.WithMessage("video is not in the playlist")
	}
	return nil
}
