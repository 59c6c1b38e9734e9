package github

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"PainRadar/internal/config"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const issuesJSON = `[
 {"id":9001,"number":12,"title":"Feature request: export to CSV","body":"Manually copying rows is tedious.","state":"open","html_url":"https://github.com/acme/app/issues/12","comments":7,"created_at":"2024-03-01T00:00:00Z","user":{"login":"dev"},"labels":[{"name":"enhancement"}],"reactions":{"total_count":5}},
 {"id":9002,"number":13,"title":"Export is broken in PR","body":"export","state":"open","html_url":"https://github.com/acme/app/pull/13","comments":0,"created_at":"2024-03-01T00:00:00Z","pull_request":{},"reactions":{"total_count":9}},
 {"id":9003,"number":14,"title":"Dark mode","body":"Please add it","state":"open","html_url":"https://github.com/acme/app/issues/14","comments":1,"created_at":"2024-03-01T00:00:00Z","reactions":{"total_count":3}}
]`

func TestFetchAndConvert(t *testing.T) {
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, path = r.Header.Get("Authorization"), r.URL.Path
		_, _ = io.WriteString(w, issuesJSON)
	}))
	defer srv.Close()

	cfg := &config.SourceConfig{BaseURL: srv.URL, Timeout: 5, MaxResults: 50, AuthToken: "ghp",
		Repositories: []string{"acme/app"}, Queries: []string{"EXPORT"}}
	a := NewGitHubAdapter(cfg, quietLogger())
	items, err := a.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth != "Bearer ghp" || path != "/repos/acme/app/issues" {
		t.Fatalf("unexpected request: %q %q", auth, path)
	}
	// PR 与不含关键词的 issue 被过滤
	if len(items) != 1 {
		t.Fatalf("unexpected items: %#v", items)
	}

	cands, _ := a.ConvertToCandidates(items)
	if len(cands) != 1 {
		t.Fatalf("unexpected candidates: %#v", cands)
	}
	c := cands[0]
	if c.ExternalID != "GH_9001" || c.Title != "[GH/app] Feature request: export to CSV" {
		t.Fatalf("unexpected candidate: %#v", c)
	}
	if c.Description != "Feature request: export to CSV\n\nManually copying rows is tedious.\n\nLink: https://github.com/acme/app/issues/12" {
		t.Fatalf("unexpected description: %q", c.Description)
	}
	if c.EngagementPrimary != 15 || c.EngagementSecondary != 3 || c.EngagementTertiary != 7 {
		t.Fatalf("unexpected engagement: %#v", c)
	}
	if c.ScoreBonus != 15 {
		t.Fatalf("unexpected bonus: %d", c.ScoreBonus)
	}
}

func TestReactionsTotalFallback(t *testing.T) {
	r := Reactions{PlusOne: 2, Heart: 1, Rocket: 1}
	if r.Total() != 4 {
		t.Fatalf("unexpected total: %d", r.Total())
	}
}
