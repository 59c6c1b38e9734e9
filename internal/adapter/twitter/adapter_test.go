package twitter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"PainRadar/internal/config"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBuildQuery(t *testing.T) {
	got := BuildQuery([]string{"is there a tool", " ", "wish there was"})
	want := `("is there a tool" OR "wish there was") -is:retweet lang:en`
	if got != want {
		t.Fatalf("unexpected query: %q", got)
	}
	if BuildQuery(nil) != "" {
		t.Fatalf("expected empty query")
	}
	// 非 ASCII 字符原样保留，不做 Go 转义
	if got := BuildQuery([]string{"café app"}); got != `("café app") -is:retweet lang:en` {
		t.Fatalf("unexpected query: %q", got)
	}
}

const searchJSON = `{"data":[
 {"id":"77","text":"Why is there no tool that syncs my calendar with Notion? I'd pay $10/mo","created_at":"2024-05-01T10:00:00Z","author_id":"u1","public_metrics":{"like_count":12,"retweet_count":3,"reply_count":4}},
 {"id":"78","text":"lol","created_at":"2024-05-01T10:00:00Z","author_id":"u2","public_metrics":{"like_count":1}}
],"includes":{"users":[{"id":"u1","username":"maker","public_metrics":{"followers_count":900}}]}}`

func TestFetchAndConvert(t *testing.T) {
	var maxResults, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		maxResults, auth = r.URL.Query().Get("max_results"), r.Header.Get("Authorization")
		_, _ = io.WriteString(w, searchJSON)
	}))
	defer srv.Close()

	cfg := &config.SourceConfig{BaseURL: srv.URL, Timeout: 5, MaxResults: 5, AuthToken: "tok", Queries: []string{"is there a tool"}}
	a := NewTwitterAdapter(cfg, quietLogger())
	items, err := a.FetchItems(context.Background())
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected items: %#v %v", items, err)
	}
	if maxResults != "10" || auth != "Bearer tok" {
		t.Fatalf("unexpected request: max_results=%s auth=%s", maxResults, auth)
	}

	cands, _ := a.ConvertToCandidates(items)
	if len(cands) != 1 {
		t.Fatalf("unexpected candidates: %#v", cands)
	}
	c := cands[0]
	if c.ExternalID != "TW_77" || c.URL != "https://twitter.com/maker/status/77" || c.AuthorWeight != 900 {
		t.Fatalf("unexpected candidate: %#v", c)
	}
	if c.EngagementPrimary != 12 || c.EngagementSecondary != 3 || c.EngagementTertiary != 4 {
		t.Fatalf("unexpected engagement: %#v", c)
	}
}

func TestFetchRequiresToken(t *testing.T) {
	a := NewTwitterAdapter(&config.SourceConfig{Queries: []string{"x"}}, quietLogger())
	if _, err := a.FetchItems(context.Background()); err == nil {
		t.Fatalf("expected error without bearer token")
	}
}

func TestTweetTitle(t *testing.T) {
	long := strings.Repeat("a", 120)
	if got := tweetTitle(long); got != strings.Repeat("a", 100)+"..." {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := tweetTitle("short tweet"); got != "short tweet" {
		t.Fatalf("unexpected title: %q", got)
	}
}
