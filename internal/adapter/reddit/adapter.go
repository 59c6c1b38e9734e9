package reddit

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
	adapter.Register(model.SourceReddit, NewRedditAdapter)
}

// listing Reddit 公开 JSON 接口的列表结构
type listing struct {
	Data struct {
		Children []struct {
			Data Submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Submission Reddit 帖子
type Submission struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	CreatedUTC  float64 `json:"created_utc"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	Stickied    bool    `json:"stickied"`
	Subreddit   string  `json:"subreddit"`
}

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewRedditAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return model.SourceReddit
}

// FetchItems 每个子版块 × 每个关键词搜索最近一周的帖子
func (a *Adapter) FetchItems(ctx context.Context) ([]*model.SourceRawItem, error) {
	var tasks []string
	for _, sub := range a.cfg.Subreddits {
		for _, q := range a.cfg.Queries {
			tasks = append(tasks, sub+"|"+q)
		}
	}
	return adapter.FanOut(ctx, a.logger, a.GetName(), tasks, a.search)
}

func (a *Adapter) search(ctx context.Context, task string) ([]*model.SourceRawItem, error) {
	sub, query, _ := strings.Cut(task, "|")
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("sort", "relevance")
	params.Set("t", "week")
	params.Set("limit", strconv.Itoa(a.cfg.MaxResults))
	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", strings.TrimRight(a.cfg.BaseURL, "/"), url.PathEscape(sub), params.Encode())

	var resp listing
	if err := httpclient.GetJSON(ctx, a.httpClient, a.logger, endpoint, nil, a.cfg.RetryCount, &resp); err != nil {
		return nil, fmt.Errorf("搜索 r/%s 失败: %w", sub, err)
	}

	items := make([]*model.SourceRawItem, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		s := child.Data
		if s.Stickied || s.Score < a.cfg.MinVotes {
			continue
		}
		if s.Subreddit == "" {
			s.Subreddit = sub
		}
		items = append(items, &model.SourceRawItem{Source: a.GetName(), ID: s.ID, Query: task, Data: s})
	}
	return items, nil
}

func (a *Adapter) ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) {
	candidates := make([]*model.CandidatePost, 0, len(raw))
	for _, r := range raw {
		s, ok := r.Data.(Submission)
		if !ok {
			a.logger.Warn("RawItem数据类型错误，跳过")
			continue
		}
		text := adapter.JoinTitleBody(s.Title, s.Selftext)
		if len(text) < adapter.MinTextLength {
			continue
		}

		author := "r/" + s.Subreddit
		candidates = append(candidates, &model.CandidatePost{
			ExternalID:          "RD_" + s.ID,
			Source:              a.GetName(),
			Title:               "[Reddit] " + strings.TrimSpace(adapter.Truncate(s.Title, 200)),
			Text:                text,
			URL:                 "https://reddit.com" + s.Permalink,
			CreatedAt:           time.Unix(int64(s.CreatedUTC), 0).UTC(),
			Author:              &author,
			AuthorWeight:        s.Score,
			EngagementPrimary:   s.Score,
			EngagementSecondary: s.NumComments / 2,
			EngagementTertiary:  s.NumComments,
		})
	}
	return candidates, nil
}
