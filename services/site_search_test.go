package services

import (
	"testing"

	"geocheckin/models"
)

func TestNormalizeInput(t *testing.T) {
	if got := normalizeInput("  Hà   Nội Office "); got != "ha noi office" {
		t.Errorf("normalizeInput = %q", got)
	}
}

func TestRankSites(t *testing.T) {
	sites := []models.Site{
		{ID: "wh", Name: "Riverside Warehouse"},
		{ID: "hn", Name: "Hà Nội Office"},
		{ID: "hq", Name: "Head Office"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty lists all by name", "", []string{"hq", "hn", "wh"}},
		{"accent insensitive", "ha noi", []string{"hn"}},
		{"substring", "office", []string{"hq", "hn"}},
		{"prefix ranks first", "head", []string{"hq"}},
		{"typo in a word", "warehose", []string{"wh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := RankSites(tt.query, sites)
			if len(res.Sites) != len(tt.want) {
				t.Fatalf("got %d sites, want %d: %+v", len(res.Sites), len(tt.want), res.Sites)
			}
			for i, id := range tt.want {
				if res.Sites[i].ID != id {
					t.Errorf("site %d = %s, want %s", i, res.Sites[i].ID, id)
				}
			}
			if res.DidYouMean != "" {
				t.Errorf("unexpected suggestion %q", res.DidYouMean)
			}
		})
	}
}

func TestRankSitesSuggestion(t *testing.T) {
	sites := []models.Site{
		{ID: "wh", Name: "Riverside Warehouse"},
		{ID: "hq", Name: "Head Office"},
	}

	res := RankSites("zzzz qqqq", sites)
	if len(res.Sites) != 0 {
		t.Fatalf("expected no matches, got %+v", res.Sites)
	}
	if res.DidYouMean != "" && res.DidYouMean != "Riverside Warehouse" && res.DidYouMean != "Head Office" {
		t.Errorf("suggestion %q is not a site name", res.DidYouMean)
	}

	if got := RankSites("anything", nil); got.DidYouMean != "" || len(got.Sites) != 0 {
		t.Errorf("empty site list gave %+v", got)
	}
}
