package pain

import (
	"reflect"
	"strings"
	"testing"
)

const airtableTweet = "I'm paying $99/mo for Airtable and it STILL doesn't do what I need! Why is there no simple database for small teams???"

func TestAnalyzeAirtableTweet(t *testing.T) {
	got := Analyze(airtableTweet)

	if got.FrustrationScore != 1 {
		t.Fatalf("unexpected frustration score: %d", got.FrustrationScore)
	}
	if got.BudgetSignalScore != 50 {
		t.Fatalf("unexpected budget score: %d", got.BudgetSignalScore)
	}
	if !reflect.DeepEqual(got.DollarAmounts, []string{"$99/mo"}) {
		t.Fatalf("unexpected dollar amounts: %#v", got.DollarAmounts)
	}
	if !reflect.DeepEqual(got.ProductsMentioned, []string{"airtable", "teams"}) {
		t.Fatalf("unexpected products: %#v", got.ProductsMentioned)
	}
	if !reflect.DeepEqual(got.PainKeywords, []string{"why is there no"}) {
		t.Fatalf("unexpected pain keywords: %#v", got.PainKeywords)
	}
	if !got.HasSolutionSeeking || got.HasTimeInvestment {
		t.Fatalf("unexpected flags: %#v", got)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	got := Analyze("")
	if got.FrustrationScore != 0 || got.BudgetSignalScore != 0 {
		t.Fatalf("expected zero scores, got %#v", got)
	}
	if got.PainKeywords == nil || got.ProductsMentioned == nil || got.DollarAmounts == nil {
		t.Fatalf("expected empty non-nil slices, got %#v", got)
	}
	if len(got.PainKeywords)+len(got.ProductsMentioned)+len(got.DollarAmounts) != 0 {
		t.Fatalf("expected empty slices, got %#v", got)
	}
}

func TestFrustrationScoreComponents(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"plain", "the weather is nice today", 0},
		{"one keyword", "this tool is annoying me", 2},
		{"keyword cap", "hate terrible awful worst garbage broken stupid", 6},
		{"exclamations capped", "ok!!!!!", 2},
		{"all caps", "THIS IS SO BAD", 2},
		{"mixed caps", "THIS is fine and calm", 1},
		{"everything", "I HATE THIS TERRIBLE AWFUL BROKEN GARBAGE!!!", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FrustrationScore(tc.text); got != tc.want {
				t.Fatalf("FrustrationScore(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestBudgetSignalIsBinaryForAmountsAndTools(t *testing.T) {
	one := BudgetSignalScore("I gave them $10")
	many := BudgetSignalScore("I gave them $10 and $20 and $30/month")
	if one != many {
		t.Fatalf("multiple amounts changed score: %d vs %d", one, many)
	}
	if one != 25 { // $ 金额 +20，"$" 关键词 +5
		t.Fatalf("unexpected score for single amount: %d", one)
	}
	tools := BudgetSignalScore("notion slack jira figma")
	if tools != 20 {
		t.Fatalf("unexpected score for tools: %d", tools)
	}
}

func TestScoresStayBoundedUnderRepetition(t *testing.T) {
	text := strings.Repeat("HATE!!! $1,000.00/year paying notion costs expensive subscription ", 200)
	f := FrustrationScore(text)
	b := BudgetSignalScore(text)
	if f < 0 || f > MaxFrustrationScore {
		t.Fatalf("frustration out of range: %d", f)
	}
	if b < 0 || b > MaxBudgetScore {
		t.Fatalf("budget out of range: %d", b)
	}
	if b != MaxBudgetScore {
		t.Fatalf("expected saturated budget score, got %d", b)
	}
}

func TestDollarAmountsKeepOrderAndDuplicates(t *testing.T) {
	got := DollarAmounts("was $1,200.50/year now $99/mo, still $99/mo")
	want := []string{"$1,200.50/year", "$99/mo", "$99/mo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected amounts: %#v", got)
	}
}

func TestProductsMentionedDedupAndOrder(t *testing.T) {
	got := ProductsMentioned("@Notion why is Notion slower than Obsidian? This is like Trello all over")
	want := []string{"Notion", "trello", "Obsidian"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected products: %#v", got)
	}
}

func TestProductsMentionedSkipsStopwordsAndShortWords(t *testing.T) {
	got := ProductsMentioned("Why does it work? When it fails, Go and Ok are fine. GitHub is")
	want := []string{"GitHub"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected products: %#v", got)
	}
}

func TestPainKeywordsOrder(t *testing.T) {
	got := PainKeywords("Spent hours on this, does anyone know why it's so frustrating and broken?")
	want := []string{"frustrating", "broken", "does anyone know", "spent hours"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keywords: %#v", got)
	}
}

func TestFlagsAreCaseInsensitive(t *testing.T) {
	if !HasSolutionSeeking("LOOKING FOR A TOOL to sync calendars") {
		t.Fatal("expected solution seeking")
	}
	if !HasTimeInvestment("I CONSTANTLY redo this report") {
		t.Fatal("expected time investment")
	}
	if HasSolutionSeeking("nothing to see here") || HasTimeInvestment("nothing to see here") {
		t.Fatal("unexpected flag on neutral text")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := Analyze(airtableTweet)
	b := Analyze(airtableTweet)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("analysis not deterministic: %#v vs %#v", a, b)
	}
}

func TestProductsMentionedUnicode(t *testing.T) {
	got := ProductsMentioned("Café owners and @Zoë hate Résumé tools")
	want := []string{"Zoë", "Café", "Résumé"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected products: %#v", got)
	}
	// 前后紧贴字母的大写片段不是独立单词
	if got := ProductsMentioned("iPhone über Größe"); !reflect.DeepEqual(got, []string{"Größe"}) {
		t.Fatalf("unexpected products: %#v", got)
	}
}
