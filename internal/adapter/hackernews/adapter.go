package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PainRadar/internal/adapter"
	"PainRadar/internal/config"
	"PainRadar/internal/interfaces"
	"PainRadar/internal/model"
	"PainRadar/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SourceHackerNews, NewHackerNewsAdapter)
}

type searchResponse struct {
	Hits []Hit `json:"hits"`
}

// Hit Algolia 搜索结果中的一条 Ask HN
type Hit struct {
	ObjectID    string    `json:"objectID"`
	Title       string    `json:"title"`
	StoryText   string    `json:"story_text"`
	Author      string    `json:"author"`
	Points      int       `json:"points"`
	NumComments int       `json:"num_comments"`
	CreatedAt   time.Time `json:"created_at"`
}

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewHackerNewsAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return model.SourceHackerNews
}

func (a *Adapter) FetchItems(ctx context.Context) ([]*model.SourceRawItem, error) {
	return adapter.FanOut(ctx, a.logger, a.GetName(), a.cfg.Queries, a.search)
}

func (a *Adapter) search(ctx context.Context, query string) ([]*model.SourceRawItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "ask_hn") // 只要 Ask HN
	params.Set("hitsPerPage", strconv.Itoa(a.cfg.MaxResults))
	endpoint := fmt.Sprintf("%s/search?%s", strings.TrimRight(a.cfg.BaseURL, "/"), params.Encode())

	var resp searchResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, a.logger, endpoint, nil, a.cfg.RetryCount, &resp); err != nil {
		return nil, fmt.Errorf("搜索 HN 失败: %w", err)
	}
	items := make([]*model.SourceRawItem, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		if h.Points < a.cfg.MinVotes {
			continue
		}
		items = append(items, &model.SourceRawItem{Source: a.GetName(), ID: h.ObjectID, Query: query, Data: h})
	}
	return items, nil
}

func (a *Adapter) ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) {
	candidates := make([]*model.CandidatePost, 0, len(raw))
	for _, r := range raw {
		h, ok := r.Data.(Hit)
		if !ok {
			a.logger.Warn("RawItem数据类型错误，跳过")
			continue
		}
		text := adapter.JoinTitleBody(h.Title, adapter.StripHTML(h.StoryText))
		if len(text) < adapter.MinTextLength {
			continue
		}

		var author *string
		if h.Author != "" {
			name := h.Author
			author = &name
		}
		candidates = append(candidates, &model.CandidatePost{
			ExternalID:          "HN_" + h.ObjectID,
			Source:              a.GetName(),
			Title:               "[HN] " + strings.TrimSpace(adapter.Truncate(h.Title, 150)),
			Text:                adapter.Truncate(text, 1000),
			URL:                 "https://news.ycombinator.com/item?id=" + h.ObjectID,
			CreatedAt:           h.CreatedAt,
			Author:              author,
			EngagementPrimary:   h.Points,
			EngagementSecondary: h.NumComments / 2,
			EngagementTertiary:  h.NumComments,
		})
	}
	return candidates, nil
}
