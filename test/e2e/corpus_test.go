package e2e

import (
	"strings"
	"testing"
)

func TestBuildCorpus_Shape(t *testing.T) {
	c := BuildCorpus(10)
	if got, want := len(c.Records), 10*len(themes); got != want {
		t.Fatalf("records = %d, want %d", got, want)
	}
	if got, want := len(c.TestCases), len(themes); got != want {
		t.Fatalf("test cases = %d, want %d", got, want)
	}

	ids := make(map[int]bool)
	titles := make(map[string]bool)
	for _, r := range c.Records {
		if ids[r.ID] {
			t.Errorf("duplicate id %d", r.ID)
		}
		ids[r.ID] = true
		if titles[r.Title] {
			t.Errorf("duplicate title %q", r.Title)
		}
		titles[r.Title] = true
		if r.Overview == "" || len(r.Genres) == 0 || len(r.Keywords) == 0 || len(r.Cast) == 0 || r.Director == "" {
			t.Errorf("incomplete record %+v", r)
		}
	}
}

func TestBuildCorpus_TestCasesResolvable(t *testing.T) {
	c := BuildCorpus(3)
	titles := make(map[string]bool)
	for _, r := range c.Records {
		titles[r.Title] = true
	}
	for _, tc := range c.TestCases {
		if !titles[tc.Query] {
			t.Errorf("query %q not in corpus", tc.Query)
		}
		for _, want := range tc.ExpectedTitles {
			if !titles[want] {
				t.Errorf("expected title %q not in corpus", want)
			}
		}
	}
}

func TestThemeTitle(t *testing.T) {
	if got := themeTitle("space", 3); got != "Space movie 3" {
		t.Errorf("themeTitle = %q", got)
	}
	if !strings.HasPrefix(themeTitle("romance", 1), "Romance") {
		t.Errorf("themeTitle should capitalize the theme name")
	}
}
