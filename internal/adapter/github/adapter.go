package github

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
	adapter.Register(model.SourceGitHub, NewGitHubAdapter)
}

var featureLabels = map[string]struct{}{
	"feature-request": {},
	"enhancement":     {},
	"improvement":     {},
}

// Issue GitHub issue（仅保留用到的字段）
type Issue struct {
	ID          int64     `json:"id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	HTMLURL     string    `json:"html_url"`
	Comments    int       `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
	User        struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
	Reactions Reactions `json:"reactions"`
	Repo      string    `json:"-"`
}

// Reactions issue 的表情反应统计
type Reactions struct {
	TotalCount int `json:"total_count"`
	PlusOne    int `json:"+1"`
	MinusOne   int `json:"-1"`
	Laugh      int `json:"laugh"`
	Hooray     int `json:"hooray"`
	Confused   int `json:"confused"`
	Heart      int `json:"heart"`
	Rocket     int `json:"rocket"`
	Eyes       int `json:"eyes"`
}

// Total total_count 缺失时按各项求和
func (r Reactions) Total() int {
	if r.TotalCount > 0 {
		return r.TotalCount
	}
	return r.PlusOne + r.MinusOne + r.Laugh + r.Hooray + r.Confused + r.Heart + r.Rocket + r.Eyes
}

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewGitHubAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return model.SourceGitHub
}

// FetchItems 每个仓库 × 每个标签拉取按反应数排序的 issue，再按关键词在本地过滤
func (a *Adapter) FetchItems(ctx context.Context) ([]*model.SourceRawItem, error) {
	var tasks []string
	for _, repo := range a.cfg.Repositories {
		if len(a.cfg.Labels) == 0 {
			tasks = append(tasks, repo+"|")
			continue
		}
		for _, label := range a.cfg.Labels {
			tasks = append(tasks, repo+"|"+label)
		}
	}
	return adapter.FanOut(ctx, a.logger, a.GetName(), tasks, a.listIssues)
}

func (a *Adapter) listIssues(ctx context.Context, task string) ([]*model.SourceRawItem, error) {
	repo, label, _ := strings.Cut(task, "|")
	params := url.Values{}
	params.Set("state", "open")
	params.Set("sort", "reactions") // 反应越多痛点越强
	params.Set("direction", "desc")
	params.Set("per_page", strconv.Itoa(a.cfg.MaxResults))
	if label != "" {
		params.Set("labels", label)
	}
	endpoint := fmt.Sprintf("%s/repos/%s/issues?%s", strings.TrimRight(a.cfg.BaseURL, "/"), repo, params.Encode())

	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if a.cfg.AuthToken != "" {
		headers["Authorization"] = "Bearer " + a.cfg.AuthToken
	}
	var issues []Issue
	if err := httpclient.GetJSON(ctx, a.httpClient, a.logger, endpoint, headers, a.cfg.RetryCount, &issues); err != nil {
		return nil, fmt.Errorf("拉取 %s issue 失败: %w", repo, err)
	}

	items := make([]*model.SourceRawItem, 0, len(issues))
	for _, is := range issues {
		if is.PullRequest != nil || is.Reactions.Total() < a.cfg.MinVotes {
			continue
		}
		if !matchesKeywords(is, a.cfg.Queries) {
			continue
		}
		is.Repo = repo
		items = append(items, &model.SourceRawItem{
			Source: a.GetName(),
			ID:     strconv.FormatInt(is.ID, 10),
			Query:  task,
			Data:   is,
		})
	}
	return items, nil
}

// matchesKeywords 标题或正文包含任一关键词；未配置关键词时全部保留
func matchesKeywords(is Issue, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	title, body := strings.ToLower(is.Title), strings.ToLower(is.Body)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			return true
		}
	}
	return false
}

// Bonus 功能需求类标签 +10，仍未关闭 +5
func Bonus(is Issue) int {
	bonus := 0
	for _, l := range is.Labels {
		if _, ok := featureLabels[l.Name]; ok {
			bonus += 10
			break
		}
	}
	if is.State == "open" {
		bonus += 5
	}
	return bonus
}

func (a *Adapter) ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) {
	candidates := make([]*model.CandidatePost, 0, len(raw))
	for _, r := range raw {
		is, ok := r.Data.(Issue)
		if !ok {
			a.logger.Warn("RawItem数据类型错误，跳过")
			continue
		}
		text := adapter.JoinTitleBody(is.Title, adapter.Truncate(is.Body, 800))
		if len(text) < adapter.MinTextLength {
			continue
		}

		repoShort := is.Repo
		if _, name, ok := strings.Cut(is.Repo, "/"); ok {
			repoShort = name
		}
		var author *string
		if is.User.Login != "" {
			login := is.User.Login
			author = &login
		}
		candidates = append(candidates, &model.CandidatePost{
			ExternalID:          fmt.Sprintf("GH_%d", is.ID),
			Source:              a.GetName(),
			Title:               fmt.Sprintf("[GH/%s] %s", repoShort, adapter.Truncate(is.Title, 100)),
			Text:                adapter.Truncate(text, 1000),
			Description:         adapter.DescriptionWithLink(text, is.HTMLURL),
			URL:                 is.HTMLURL,
			CreatedAt:           is.CreatedAt,
			Author:              author,
			EngagementPrimary:   is.Reactions.Total() * 3,
			EngagementSecondary: is.Comments / 2,
			EngagementTertiary:  is.Comments,
			ScoreBonus:          Bonus(is),
		})
	}
	return candidates, nil
}
