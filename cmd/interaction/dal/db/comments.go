package db

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
	"gorm.io/gorm"
)

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	return translate(s.db.WithContext(ctx).Create(comment).Error, "create comment %d", comment.ID)
}

func (s *Store) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	comment := &model.Comment{}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(comment).Error; err != nil {
		return nil, translate(err, "get comment %d", id)
	}
	return comment, nil
}

func (s *Store) UpdateComment(ctx context.Context, id int64, content string) (*model.Comment, error) {
	res := s.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, translate(res.Error, "update comment %d", id)
	}
	return s.GetComment(ctx, id)
}

func (s *Store) DeleteComment(ctx context.Context, id int64, cascade bool) error {
	return s.deleteWithLikes(ctx, &model.Comment{}, model.CommentTarget(id), cascade)
}

// ListComments 评论作者已不存在的评论不出现在结果中
func (s *Store) ListComments(ctx context.Context, videoID int64, page pagination.Request) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).
		Scopes(page.Scope("comments")).
		Find(&comments).Error
	if err != nil {
		return nil, translate(err, "list comments of video %d", videoID)
	}
	return comments, nil
}

func (s *Store) CountComments(ctx context.Context, videoID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Joins("JOIN users ON users.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).Count(&n).Error
	if err != nil {
		return 0, translate(err, "count comments of video %d", videoID)
	}
	return n, nil
}

func (s *Store) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	return translate(s.db.WithContext(ctx).Create(tweet).Error, "create tweet %d", tweet.ID)
}

func (s *Store) GetTweet(ctx context.Context, id int64) (*model.Tweet, error) {
	tweet := &model.Tweet{}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(tweet).Error; err != nil {
		return nil, translate(err, "get tweet %d", id)
	}
	return tweet, nil
}

func (s *Store) UpdateTweet(ctx context.Context, id int64, content string) (*model.Tweet, error) {
	res := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return nil, translate(res.Error, "update tweet %d", id)
	}
	return s.GetTweet(ctx, id)
}

func (s *Store) DeleteTweet(ctx context.Context, id int64, cascade bool) error {
	return s.deleteWithLikes(ctx, &model.Tweet{}, model.TweetTarget(id), cascade)
}

func (s *Store) ListTweets(ctx context.Context, ownerID int64, page pagination.Request) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	err := s.db.WithContext(ctx).Model(&model.Tweet{}).
		Where("tweets.owner_id = ?", ownerID).
		Scopes(page.Scope("tweets")).
		Find(&tweets).Error
	if err != nil {
		return nil, translate(err, "list tweets of user %d", ownerID)
	}
	return tweets, nil
}

func (s *Store) CountTweets(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("owner_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, translate(err, "count tweets of user %d", ownerID)
	}
	return n, nil
}

// deleteWithLikes 删除评论或动态，cascade 时在同一事务中删除其上的点赞
func (s *Store) deleteWithLikes(ctx context.Context, entity interface{}, target model.LikeTarget, cascade bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", target.ID()).Delete(entity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		if !cascade {
			return nil
		}
		return tx.Where("target_kind = ? AND target_id = ?", target.Kind(), target.ID()).Delete(&model.Like{}).Error
	})
	if err == repo.ErrNotFound {
		return err
	}
	return translate(err, "delete %s %d", target, target.ID())
}
