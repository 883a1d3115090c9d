package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/pagination"
)

func (s *Store) InsertSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := alive(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := subKey{subscriber: sub.SubscriberID, channel: sub.ChannelID}
	if _, ok := s.subKeys[k]; ok {
		return repo.ErrDuplicate
	}
	if _, ok := s.subs[sub.ID]; ok {
		return repo.ErrDuplicate
	}
	s.stamp(&sub.CreatedAt, &sub.UpdatedAt)
	s.subs[sub.ID] = clone(sub)
	s.subKeys[k] = sub.ID
	return nil
}

func (s *Store) DeleteSubscription(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if err := alive(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := subKey{subscriber: subscriberID, channel: channelID}
	id, ok := s.subKeys[k]
	if !ok {
		return false, nil
	}
	delete(s.subKeys, k)
	delete(s.subs, id)
	return true, nil
}

func (s *Store) subsWhereLocked(match func(*model.Subscription) bool) []*model.Subscription {
	out := make([]*model.Subscription, 0)
	for _, sub := range s.subs {
		if match(sub) {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Store) ListSubscribers(ctx context.Context, channelID int64, page pagination.Request) ([]*model.Subscription, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := s.subsWhereLocked(func(sub *model.Subscription) bool { return sub.ChannelID == channelID })
	return cloneAll(pagination.Window(subs, page)), nil
}

func (s *Store) ListSubscriptions(ctx context.Context, subscriberID int64, page pagination.Request) ([]*model.Subscription, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := s.subsWhereLocked(func(sub *model.Subscription) bool { return sub.SubscriberID == subscriberID })
	return cloneAll(pagination.Window(subs, page)), nil
}

func (s *Store) CountSubscribers(ctx context.Context, channelIDs []int64) (map[int64]int64, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[int64]struct{}, len(channelIDs))
	for _, id := range channelIDs {
		want[id] = struct{}{}
	}
	out := make(map[int64]int64, len(channelIDs))
	for _, sub := range s.subs {
		if _, ok := want[sub.ChannelID]; ok {
			out[sub.ChannelID]++
		}
	}
	return out, nil
}

func (s *Store) CountSubscriptions(ctx context.Context, subscriberID int64) (int64, error) {
	if err := alive(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	subs := s.subsWhereLocked(func(sub *model.Subscription) bool { return sub.SubscriberID == subscriberID })
	return int64(len(subs)), nil
}

func (s *Store) SubscribedTo(ctx context.Context, subscriberID int64, channelIDs []int64) (map[int64]bool, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]bool, len(channelIDs))
	for _, id := range channelIDs {
		if _, ok := s.subKeys[subKey{subscriber: subscriberID, channel: id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}
