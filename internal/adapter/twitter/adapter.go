package twitter

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
	adapter.Register(model.SourceTwitter, NewTwitterAdapter)
}

// searchResponse Twitter API v2 recent search 响应
type searchResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		CreatedAt     time.Time `json:"created_at"`
		AuthorID      string    `json:"author_id"`
		Lang          string    `json:"lang"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []user `json:"users"`
	} `json:"includes"`
}

type user struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

// Tweet 推文及作者信息
type Tweet struct {
	ID             string
	Text           string
	CreatedAt      time.Time
	Username       string
	FollowersCount int
	Likes          int
	Retweets       int
	Replies        int
}

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewTwitterAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return model.SourceTwitter
}

// BuildQuery 组合搜索词：("a" OR "b") -is:retweet lang:en
func BuildQuery(phrases []string) string {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		quoted = append(quoted, `"`+p+`"`)
	}
	if len(quoted) == 0 {
		return ""
	}
	return "(" + strings.Join(quoted, " OR ") + ") -is:retweet lang:en"
}

func (a *Adapter) FetchItems(ctx context.Context) ([]*model.SourceRawItem, error) {
	if a.cfg.AuthToken == "" {
		return nil, fmt.Errorf("未配置 TWITTER_BEARER_TOKEN")
	}
	queries := make([]string, 0, len(a.cfg.Queries))
	for _, q := range a.cfg.Queries {
		queries = append(queries, BuildQuery([]string{q}))
	}
	return adapter.FanOut(ctx, a.logger, a.GetName(), queries, a.search)
}

func (a *Adapter) search(ctx context.Context, query string) ([]*model.SourceRawItem, error) {
	// recent search 接口要求 10 <= max_results <= 100
	maxResults := min(100, max(10, a.cfg.MaxResults))
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", "created_at,public_metrics,author_id,lang")
	params.Set("user.fields", "username,public_metrics")
	params.Set("expansions", "author_id")
	endpoint := fmt.Sprintf("%s/tweets/search/recent?%s", strings.TrimRight(a.cfg.BaseURL, "/"), params.Encode())

	var resp searchResponse
	headers := map[string]string{"Authorization": "Bearer " + a.cfg.AuthToken}
	if err := httpclient.GetJSON(ctx, a.httpClient, a.logger, endpoint, headers, a.cfg.RetryCount, &resp); err != nil {
		return nil, fmt.Errorf("搜索推文失败: %w", err)
	}

	users := make(map[string]user, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = u
	}
	items := make([]*model.SourceRawItem, 0, len(resp.Data))
	for _, t := range resp.Data {
		u := users[t.AuthorID]
		items = append(items, &model.SourceRawItem{
			Source: a.GetName(),
			ID:     t.ID,
			Query:  query,
			Data: Tweet{
				ID:             t.ID,
				Text:           t.Text,
				CreatedAt:      t.CreatedAt,
				Username:       u.Username,
				FollowersCount: u.PublicMetrics.FollowersCount,
				Likes:          t.PublicMetrics.LikeCount,
				Retweets:       t.PublicMetrics.RetweetCount,
				Replies:        t.PublicMetrics.ReplyCount,
			},
		})
	}
	return items, nil
}

func (a *Adapter) ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) {
	candidates := make([]*model.CandidatePost, 0, len(raw))
	for _, r := range raw {
		t, ok := r.Data.(Tweet)
		if !ok {
			a.logger.Warn("RawItem数据类型错误，跳过")
			continue
		}
		if len(strings.TrimSpace(t.Text)) < adapter.MinTextLength {
			continue
		}

		var author *string
		if t.Username != "" {
			name := t.Username
			author = &name
		}
		candidates = append(candidates, &model.CandidatePost{
			ExternalID:          "TW_" + t.ID,
			Source:              a.GetName(),
			Title:               tweetTitle(t.Text),
			Text:                t.Text,
			URL:                 tweetURL(t),
			CreatedAt:           t.CreatedAt,
			Author:              author,
			AuthorWeight:        t.FollowersCount,
			EngagementPrimary:   t.Likes,
			EngagementSecondary: t.Retweets,
			EngagementTertiary:  t.Replies,
		})
	}
	return candidates, nil
}

// tweetTitle 前 100 个字符，被截断时追加省略号
func tweetTitle(text string) string {
	text = strings.TrimSpace(text)
	title := strings.TrimSpace(adapter.Truncate(text, 100))
	if len([]rune(text)) > 100 {
		title += "..."
	}
	return title
}

func tweetURL(t Tweet) string {
	if t.Username == "" {
		return "https://twitter.com/i/web/status/" + t.ID
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", t.Username, t.ID)
}
