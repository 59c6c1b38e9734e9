package scoring

import (
	"reflect"
	"strings"
	"testing"

	"PainRadar/internal/pain"
)

func TestGenericAirtableExample(t *testing.T) {
	a := pain.Analyze("I'm paying $99/mo for Airtable and it STILL doesn't do what I need! Why is there no simple database for small teams???")
	got := Generic(Engagement{Likes: 45, Retweets: 12, Replies: 8}, a)

	if got.Engagement != 6 || got.Frustration != 7 || got.Budget != 50 {
		t.Fatalf("unexpected components: %#v", got)
	}
	if got.Total != 63 || got.Rating != "Good" || got.Color != "warning" {
		t.Fatalf("unexpected total: %#v", got)
	}
	if !got.Factors.HasDollarAmount || !got.Factors.MentionsPaidTool || got.Factors.PainKeywordsCount != 1 {
		t.Fatalf("unexpected factors: %#v", got.Factors)
	}
}

func TestEngagementScore(t *testing.T) {
	cases := []struct {
		e    Engagement
		want int
	}{
		{Engagement{}, 0},
		{Engagement{Likes: 9}, 0},
		{Engagement{Likes: 10}, 1},
		{Engagement{Likes: 45, Retweets: 12}, 6},
		{Engagement{Likes: 10000, Retweets: 10000}, 20},
		{Engagement{Likes: -50, Retweets: -3}, 0},
	}
	for _, tc := range cases {
		if got := EngagementScore(tc.e); got != tc.want {
			t.Fatalf("EngagementScore(%#v) = %d, want %d", tc.e, got, tc.want)
		}
	}
}

func TestGenericTotalIsSumOfComponents(t *testing.T) {
	texts := []string{
		"",
		"hello world",
		"I HATE THIS TERRIBLE AWFUL BROKEN GARBAGE!!! spent hours, why is there no fix",
		strings.Repeat("paying $500/month for salesforce, sick of it!!! ", 50),
	}
	engagements := []Engagement{{}, {Likes: 3, Retweets: 1}, {Likes: 900, Retweets: 300, Replies: 40}}

	for _, text := range texts {
		a := pain.Analyze(text)
		for _, e := range engagements {
			b := Generic(e, a)
			sum := b.Engagement + b.Frustration + b.Budget
			if b.Total != min(MaxTotal, sum) {
				t.Fatalf("total %d != capped sum %d for %q", b.Total, sum, text)
			}
			if b.Total < 0 || b.Total > MaxTotal {
				t.Fatalf("total out of range: %d", b.Total)
			}
			if b.Engagement > MaxEngagement || b.Frustration > MaxFrustration || b.Budget > pain.MaxBudgetScore {
				t.Fatalf("component over cap: %#v", b)
			}
		}
	}
}

func TestRatingThresholds(t *testing.T) {
	cases := map[int]string{100: "Excellent", 80: "Excellent", 79: "Good", 60: "Good", 59: "Worth Investigating", 40: "Worth Investigating", 39: "Low Signal", 0: "Low Signal"}
	for score, want := range cases {
		if got := Rating(score); got != want {
			t.Fatalf("Rating(%d) = %q, want %q", score, got, want)
		}
	}
	if Color(85) != "success" || Color(65) != "warning" || Color(45) != "info" || Color(5) != "secondary" {
		t.Fatal("unexpected colors")
	}
}

func TestWithBonusCaps(t *testing.T) {
	if got := WithBonus(95, 10); got != 100 {
		t.Fatalf("unexpected capped bonus: %d", got)
	}
	if got := WithBonus(50, 5); got != 55 {
		t.Fatalf("unexpected bonus: %d", got)
	}
}

func TestMicroSaaSBreakdown(t *testing.T) {
	op := OpportunityText{
		Title:       "Fleet fuel theft monitoring platform",
		Description: "Small business owners lose money daily to fuel theft. Need automated real-time monitoring dashboard with API.",
	}
	a := pain.Analysis{FrustrationScore: 4, BudgetSignalScore: 50}

	got := MicroSaaS(op, a)
	want := MicroSaaSBreakdown{Total: 64, SEOPotential: 8, SelfService: 25, PainIntensity: 16, Recurring: 15}
	if got != want {
		t.Fatalf("unexpected breakdown: %#v", got)
	}
}

func TestSelfServicePenalties(t *testing.T) {
	got := SelfServicePotential("Custom consulting", "Enterprise only implementation with integration work")
	if got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
}

func TestPainIntensity(t *testing.T) {
	if got := PainIntensity(1, 50, nil); got != 11 { // 1.5 取整前累加，11.5 -> 11
		t.Fatalf("unexpected intensity: %d", got)
	}
	if got := PainIntensity(10, 50, Keywords{"theft", "fraud", "losing money"}); got != MaxPainIntensity {
		t.Fatalf("expected cap, got %d", got)
	}
	if got := PainIntensity(0, 0, Keywords{"sucks"}); got != 0 {
		t.Fatalf("unexpected intensity: %d", got)
	}
}

func TestRecurringPotential(t *testing.T) {
	if got := RecurringPotential("a one-time migration"); got != 0 {
		t.Fatalf("unexpected recurring: %d", got)
	}
	if got := RecurringPotential("daily monitoring and tracking, recurring monthly subscription"); got != MaxRecurring {
		t.Fatalf("expected cap, got %d", got)
	}
}

func TestMicroSaaSBounds(t *testing.T) {
	heavy := strings.Repeat("api dashboard automated real-time monitoring tracking daily theft fraud compliance ", 10)
	for _, op := range []OpportunityText{{}, {Title: heavy, Description: heavy}} {
		for _, a := range []pain.Analysis{{}, {FrustrationScore: 10, BudgetSignalScore: 50, PainKeywords: []string{"fraud", "breach"}}} {
			b := MicroSaaS(op, a)
			sum := b.SEOPotential + b.SelfService + b.PainIntensity + b.Recurring
			if b.Total != min(MaxTotal, sum) || b.Total < 0 || b.Total > MaxTotal {
				t.Fatalf("unexpected total: %#v", b)
			}
		}
	}
}

func TestParseKeywords(t *testing.T) {
	got := ParseKeywords(" hate, sick of\nwasted ,, \r\n")
	want := Keywords{"hate", "sick of", "wasted"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keywords: %#v", got)
	}
	if got := ParseKeywords(""); len(got) != 0 {
		t.Fatalf("expected empty keywords, got %#v", got)
	}
}

func TestParseRubric(t *testing.T) {
	if r, err := ParseRubric(""); err != nil || r != RubricMicroSaaS {
		t.Fatalf("unexpected default rubric: %v %v", r, err)
	}
	if r, err := ParseRubric("Generic"); err != nil || r != RubricGeneric {
		t.Fatalf("unexpected rubric: %v %v", r, err)
	}
	if _, err := ParseRubric("ml"); err == nil {
		t.Fatal("expected error for unknown rubric")
	}
}
