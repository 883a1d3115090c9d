package memdb

import (
	"context"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/pkg/search"
)

const (
	titleWeight       = 2
	descriptionWeight = 1
)

func (s *Store) SearchVideos(ctx context.Context, q repo.VideoSearch) ([]repo.SearchHit, int64, error) {
	if err := alive(ctx); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	docs := make([]search.Document, 0, len(s.videos))
	for _, v := range s.videos {
		if q.OwnerID != 0 && v.OwnerID != q.OwnerID {
			continue
		}
		if !v.VisibleTo(q.ViewerID) {
			continue
		}
		docs = append(docs, search.Document{ID: v.ID, Fields: []search.Field{
			{Text: v.Title, Weight: titleWeight},
			{Text: v.Description, Weight: descriptionWeight},
		}})
	}
	s.mu.RUnlock()

	ranked := search.Rank(q.Text, docs)
	total := int64(len(ranked))
	start := min(q.Skip, len(ranked))
	end := len(ranked)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(ranked))
	}
	hits := make([]repo.SearchHit, 0, end-start)
	for _, h := range ranked[start:end] {
		hits = append(hits, repo.SearchHit{VideoID: h.ID, Score: h.Score})
	}
	return hits, total, nil
}
