package stackoverflow

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
	adapter.Register(model.SourceStackOverflow, NewStackOverflowAdapter)
}

type searchResponse struct {
	Items          []Question `json:"items"`
	QuotaRemaining int        `json:"quota_remaining"`
}

// Question Stack Exchange 问题
type Question struct {
	QuestionID   int64    `json:"question_id"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Tags         []string `json:"tags"`
	Score        int      `json:"score"`
	ViewCount    int      `json:"view_count"`
	AnswerCount  int      `json:"answer_count"`
	IsAnswered   bool     `json:"is_answered"`
	CreationDate int64    `json:"creation_date"`
	Link         string   `json:"link"`
	Owner        struct {
		DisplayName string `json:"display_name"`
		Reputation  int    `json:"reputation"`
	} `json:"owner"`
}

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewStackOverflowAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return model.SourceStackOverflow
}

// FetchItems 每个标签 × 每个关键词（无关键词时只按标签）按票数搜索
func (a *Adapter) FetchItems(ctx context.Context) ([]*model.SourceRawItem, error) {
	var tasks []string
	for _, tag := range a.cfg.Tags {
		if len(a.cfg.Queries) == 0 {
			tasks = append(tasks, tag+"|")
			continue
		}
		for _, q := range a.cfg.Queries {
			tasks = append(tasks, tag+"|"+q)
		}
	}
	return adapter.FanOut(ctx, a.logger, a.GetName(), tasks, a.search)
}

func (a *Adapter) search(ctx context.Context, task string) ([]*model.SourceRawItem, error) {
	tag, keyword, _ := strings.Cut(task, "|")
	params := url.Values{}
	params.Set("site", "stackoverflow")
	params.Set("tagged", tag)
	params.Set("sort", "votes")
	params.Set("order", "desc")
	params.Set("pagesize", strconv.Itoa(a.cfg.MaxResults))
	params.Set("filter", "withbody") // 带问题正文
	if keyword != "" {
		params.Set("q", keyword)
	}
	if a.cfg.AuthToken != "" {
		params.Set("key", a.cfg.AuthToken)
	}
	endpoint := fmt.Sprintf("%s/search/advanced?%s", strings.TrimRight(a.cfg.BaseURL, "/"), params.Encode())

	var resp searchResponse
	if err := httpclient.GetJSON(ctx, a.httpClient, a.logger, endpoint, nil, a.cfg.RetryCount, &resp); err != nil {
		return nil, fmt.Errorf("搜索 StackOverflow 失败: %w", err)
	}
	a.logger.WithFields(logrus.Fields{"tag": tag, "quota_remaining": resp.QuotaRemaining}).Debug("StackExchange 配额")

	items := make([]*model.SourceRawItem, 0, len(resp.Items))
	for _, q := range resp.Items {
		if q.Score < a.cfg.MinVotes {
			continue
		}
		items = append(items, &model.SourceRawItem{
			Source: a.GetName(),
			ID:     strconv.FormatInt(q.QuestionID, 10),
			Query:  task,
			Data:   q,
		})
	}
	return items, nil
}

// Bonus 未回答 +10，无采纳答案 +5
func Bonus(q Question) int {
	switch {
	case q.AnswerCount == 0:
		return 10
	case !q.IsAnswered:
		return 5
	default:
		return 0
	}
}

func (a *Adapter) ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) {
	candidates := make([]*model.CandidatePost, 0, len(raw))
	for _, r := range raw {
		q, ok := r.Data.(Question)
		if !ok {
			a.logger.Warn("RawItem数据类型错误，跳过")
			continue
		}
		title := adapter.StripHTML(q.Title)
		text := adapter.JoinTitleBody(title, adapter.Truncate(adapter.StripHTML(q.Body), 500))
		if len(text) < adapter.MinTextLength {
			continue
		}

		tags := q.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		var author *string
		if q.Owner.DisplayName != "" {
			name := q.Owner.DisplayName
			author = &name
		}
		candidates = append(candidates, &model.CandidatePost{
			ExternalID:          fmt.Sprintf("SO_%d", q.QuestionID),
			Source:              a.GetName(),
			Title:               fmt.Sprintf("[SO/%s] %s", strings.Join(tags, ", "), adapter.Truncate(title, 120)),
			Text:                adapter.Truncate(text, 1000),
			Description:         adapter.DescriptionWithLink(text, q.Link),
			URL:                 q.Link,
			CreatedAt:           time.Unix(q.CreationDate, 0).UTC(),
			Author:              author,
			AuthorWeight:        q.Owner.Reputation / 100,
			EngagementPrimary:   q.Score * 2,
			EngagementSecondary: q.ViewCount / 100,
			EngagementTertiary:  q.AnswerCount,
			ScoreBonus:          Bonus(q),
		})
	}
	return candidates, nil
}
