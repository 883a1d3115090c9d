package es

import (
	"context"
	"strconv"
	"time"

	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

const videoMapping = `{
	"mappings": {
		"properties": {
			"id":           {"type": "long"},
			"owner_id":     {"type": "long"},
			"title":        {"type": "text"},
			"description":  {"type": "text"},
			"is_published": {"type": "boolean"},
			"created_at":   {"type": "date"}
		}
	}
}`

// videoDoc 索引中保存的视频文档
type videoDoc struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// VideoIndex Elasticsearch 中的视频索引，既是检索后端也是消息消费端的写入目标
type VideoIndex struct {
	client *elastic.Client
	index  string
}

var _ repo.VideoSearcher = (*VideoIndex)(nil)

func NewVideoIndex(ctx context.Context, addr, index string) (*VideoIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(addr),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "connect elasticsearch %s", addr)
	}
	v := &VideoIndex{client: client, index: index}
	if err := v.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *VideoIndex) ensureIndex(ctx context.Context) error {
	exists, err := v.client.IndexExists(v.index).Do(ctx)
	if err != nil {
		return errors.Wrapf(err, "check index %s", v.index)
	}
	if exists {
		return nil
	}
	if _, err := v.client.CreateIndex(v.index).BodyString(videoMapping).Do(ctx); err != nil {
		return errors.Wrapf(err, "create index %s", v.index)
	}
	hlog.Infof("created elasticsearch index %s", v.index)
	return nil
}

func (v *VideoIndex) Upsert(ctx context.Context, e *mq.VideoEvent) error {
	doc := videoDoc{
		ID:          e.VideoID,
		OwnerID:     e.OwnerID,
		Title:       e.Title,
		Description: e.Description,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
	}
	_, err := v.client.Index().Index(v.index).Id(strconv.FormatInt(e.VideoID, 10)).BodyJson(doc).Do(ctx)
	return errors.Wrapf(err, "index video %d", e.VideoID)
}

// Delete 文档不存在时视为成功
func (v *VideoIndex) Delete(ctx context.Context, videoID int64) error {
	_, err := v.client.Delete().Index(v.index).Id(strconv.FormatInt(videoID, 10)).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return errors.Wrapf(err, "delete video %d", videoID)
}

// HandleVideoEvent 实现 mq.VideoEventHandler
func (v *VideoIndex) HandleVideoEvent(ctx context.Context, e *mq.VideoEvent) error {
	switch e.Type {
	case mq.VideoDeleted:
		return v.Delete(ctx, e.VideoID)
	case mq.VideoUpserted:
		return v.Upsert(ctx, e)
	}
	hlog.CtxWarnf(ctx, "ignore video event %s of unknown type %q", e.EventID, e.Type)
	return nil
}

// SearchVideos multi_match 覆盖标题和简介，标题权重加倍，分数相同按 ID 降序
func (v *VideoIndex) SearchVideos(ctx context.Context, q repo.VideoSearch) ([]repo.SearchHit, int64, error) {
	query := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(q.Text, "title^2", "description"))
	if q.OwnerID != 0 {
		query = query.Filter(elastic.NewTermQuery("owner_id", q.OwnerID))
	}
	published := elastic.NewTermQuery("is_published", true)
	if q.ViewerID != 0 {
		query = query.Filter(elastic.NewBoolQuery().
			Should(published, elastic.NewTermQuery("owner_id", q.ViewerID)).
			MinimumNumberShouldMatch(1))
	} else {
		query = query.Filter(published)
	}

	res, err := v.client.Search().Index(v.index).
		Query(query).
		SortBy(elastic.NewScoreSort().Desc(), elastic.NewFieldSort("id").Desc()).
		From(q.Skip).Size(q.Limit).
		TrackTotalHits(true).
		Do(ctx)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "search %q", q.Text)
	}
	hits := make([]repo.SearchHit, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		id, err := strconv.ParseInt(h.Id, 10, 64)
		if err != nil {
			continue
		}
		hit := repo.SearchHit{VideoID: id}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		hits = append(hits, hit)
	}
	return hits, res.TotalHits(), nil
}
