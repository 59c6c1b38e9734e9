package adapter

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"PainRadar/internal/config"
	"PainRadar/internal/interfaces"
	"PainRadar/internal/model"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestFanOutMergesAndDedupes(t *testing.T) {
	fetch := func(ctx context.Context, task string) ([]*model.SourceRawItem, error) {
		switch task {
		case "a":
			return []*model.SourceRawItem{{ID: "1"}, {ID: "2"}}, nil
		case "b":
			return []*model.SourceRawItem{{ID: "2"}, {ID: "3"}}, nil
		default:
			return nil, errors.New("boom")
		}
	}
	items, err := FanOut(context.Background(), quietLogger(), "test", []string{"a", "b", "c"}, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if strings.Join(ids, ",") != "1,2,3" {
		t.Fatalf("unexpected ids: %#v", ids)
	}
}

func TestFanOutAllFailed(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context, task string) ([]*model.SourceRawItem, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("down")
	}
	if _, err := FanOut(context.Background(), quietLogger(), "test", []string{"a", "b"}, fetch); err == nil {
		t.Fatalf("expected error when every task fails")
	}
	if calls != 2 {
		t.Fatalf("unexpected calls: %d", calls)
	}
}

func TestFanOutNoTasks(t *testing.T) {
	items, err := FanOut(context.Background(), quietLogger(), "test", nil, nil)
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("unexpected result: %#v %v", items, err)
	}
}

type fakeSource struct{ name string }

func (f *fakeSource) GetName() string { return f.name }
func (f *fakeSource) FetchItems(ctx context.Context) ([]*model.SourceRawItem, error) {
	return nil, nil
}
func (f *fakeSource) ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) {
	return nil, nil
}

func TestSourceRegistry(t *testing.T) {
	Register("fake-ok", func(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
		return &fakeSource{name: "fake-ok"}
	})
	Register("fake-misnamed", func(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceAdapter {
		return &fakeSource{name: "other"}
	})

	cfg := &config.Config{Sync: config.SyncConfig{EnabledSources: []string{"fake-ok", "fake-misnamed", "fake-missing"}}}
	reg := NewSourceRegistry(cfg, quietLogger())

	if got := reg.List(); len(got) != 1 || got[0] != "fake-ok" {
		t.Fatalf("unexpected sources: %#v", got)
	}
	if _, err := reg.Get("fake-missing"); err == nil {
		t.Fatalf("expected error for unregistered source")
	}
	a, err := reg.Get("fake-ok")
	if err != nil || a.GetName() != "fake-ok" {
		t.Fatalf("unexpected adapter: %v %v", a, err)
	}
}

func TestTextHelpers(t *testing.T) {
	if got := StripHTML("<p>Hello &amp; <b>bye</b></p>"); got != "Hello & bye" {
		t.Fatalf("unexpected strip: %q", got)
	}
	if got := StripHTML(`<a title="a>b" href="/x">link</a> and <code>x &lt; y</code>`); got != "link and x < y" {
		t.Fatalf("unexpected strip with > in attribute: %q", got)
	}
	if got := StripHTML(`<script>alert("don't")</script>Real text<style>p { color: red }</style>`); got != "Real text" {
		t.Fatalf("script/style content should be dropped: %q", got)
	}
	if got := Truncate("héllo", 2); got != "hé" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := JoinTitleBody(" t ", " "); got != "t" {
		t.Fatalf("unexpected join: %q", got)
	}
	if got := JoinTitleBody("t", "b"); got != "t\n\nb" {
		t.Fatalf("unexpected join: %q", got)
	}
}

func TestDescriptionWithLink(t *testing.T) {
	long := strings.Repeat("é", 450)
	got := DescriptionWithLink(long, "https://example.com/q/1")
	want := strings.Repeat("é", 400) + "\n\nLink: https://example.com/q/1"
	if got != want {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := DescriptionWithLink(" short ", "u"); got != "short\n\nLink: u" {
		t.Fatalf("unexpected description: %q", got)
	}
}
