package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

func (s *Store) InsertSubscription(ctx context.Context, sub *model.Subscription) error {
	return translate(s.db.WithContext(ctx).Create(sub).Error, "insert subscription %d", sub.ID)
}

func (s *Store) DeleteSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if res.Error != nil {
		return false, translate(res.Error, "delete subscription %d -> %d", subscriberID, channelID)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ListSubscribers(ctx context.Context, channelID int64, page pagination.Request) ([]*model.Subscription, error) {
	subs := make([]*model.Subscription, 0)
	err := s.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriptions.channel_id = ?", channelID).
		Scopes(page.Scope("subscriptions")).Find(&subs).Error
	if err != nil {
		return nil, translate(err, "list subscribers of %d", channelID)
	}
	return subs, nil
}

func (s *Store) ListSubscriptions(ctx context.Context, subscriberID int64, page pagination.Request) ([]*model.Subscription, error) {
	subs := make([]*model.Subscription, 0)
	err := s.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Scopes(page.Scope("subscriptions")).Find(&subs).Error
	if err != nil {
		return nil, translate(err, "list subscriptions of %d", subscriberID)
	}
	return subs, nil
}

func (s *Store) CountSubscribers(ctx context.Context, channelIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(channelIDs))
	if len(channelIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ChannelID int64
		Total     int64
	}
	err := s.db.WithContext(ctx).Model(&model.Subscription{}).
		Select("channel_id, COUNT(*) AS total").
		Where("channel_id IN ?", channelIDs).
		Group("channel_id").Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count subscribers")
	}
	for _, r := range rows {
		out[r.ChannelID] = r.Total
	}
	return out, nil
}

func (s *Store) CountSubscriptions(ctx context.Context, subscriberID int64) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&n).Error; err != nil {
		return 0, translate(err, "count subscriptions of %d", subscriberID)
	}
	return n, nil
}

func (s *Store) SubscribedTo(ctx context.Context, subscriberID int64, channelIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(channelIDs))
	if subscriberID == 0 || len(channelIDs) == 0 {
		return out, nil
	}
	var ids []int64
	err := s.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id IN ?", subscriberID, channelIDs).
		Pluck("channel_id", &ids).Error
	if err != nil {
		return nil, translate(err, "subscribed channels of %d", subscriberID)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
