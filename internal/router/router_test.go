package router

import (
	"context"
	"regexp"
	"testing"
)

func TestLiteralBeforeParam(t *testing.T) {
	r := New()
	var hit string
	var gotParams Params
	r.Register("/input", func(ctx context.Context, nav Nav) {
		hit = "literal"
		gotParams = nav.Params
	})
	r.Register("/input/:date", func(ctx context.Context, nav Nav) {
		hit = "param"
		gotParams = nav.Params
	})

	r.Navigate(context.Background(), "/input")
	if hit != "literal" {
		t.Fatalf("expected literal route, got %s", hit)
	}
	if len(gotParams) != 0 {
		t.Errorf("bare /input must not capture params, got %v", gotParams)
	}

	r.Navigate(context.Background(), "/input/2026-02-19")
	if hit != "param" {
		t.Fatalf("expected param route, got %s", hit)
	}
	if gotParams["date"] != "2026-02-19" {
		t.Errorf("expected date=2026-02-19, got %v", gotParams)
	}
}

func TestFirstMatchWins(t *testing.T) {
	r := New()
	var order []string
	r.Register("/analysis/:date", func(ctx context.Context, nav Nav) { order = append(order, "first") })
	r.Register("/analysis/:other", func(ctx context.Context, nav Nav) { order = append(order, "second") })

	r.Navigate(context.Background(), "/analysis/2026-02-19")
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("exactly the first matching handler must run, got %v", order)
	}
}

func TestEmptyPathDefaultsToRoot(t *testing.T) {
	r := New()
	hit := false
	r.Register("/", func(ctx context.Context, nav Nav) { hit = true })
	r.Navigate(context.Background(), "")
	if !hit {
		t.Error("empty path should resolve the / route")
	}
}

func TestParamDoesNotCrossSlash(t *testing.T) {
	r := New()
	hit := false
	r.Register("/weekly/:weekId", func(ctx context.Context, nav Nav) { hit = true })
	r.Navigate(context.Background(), "/weekly/2026-W08/extra")
	if hit {
		t.Error(":weekId must not match across a slash")
	}
}

func TestRegexpRoute(t *testing.T) {
	r := New()
	var matches []string
	r.RegisterMatch(regexp.MustCompile(`^/export/(\d{4})/(\d{2})$`), func(ctx context.Context, nav Nav) {
		matches = nav.Matches
	})
	r.Navigate(context.Background(), "/export/2026/02")
	if len(matches) != 3 || matches[1] != "2026" || matches[2] != "02" {
		t.Errorf("unexpected matches: %v", matches)
	}
}

func TestNotFoundFallback(t *testing.T) {
	r := New()
	r.Register("/", func(ctx context.Context, nav Nav) {})
	var missed string
	r.NotFound(func(ctx context.Context, nav Nav) { missed = nav.Path })
	r.Navigate(context.Background(), "/nope/nothing")
	if missed != "/nope/nothing" {
		t.Errorf("not-found handler should receive the path, got %q", missed)
	}
}

func TestTokensIncrease(t *testing.T) {
	r := New()
	r.Register("/", func(ctx context.Context, nav Nav) {})
	t1 := r.Navigate(context.Background(), "/")
	t2 := r.Navigate(context.Background(), "/")
	if t2 <= t1 {
		t.Errorf("tokens must increase: %d then %d", t1, t2)
	}
	if r.Token() != t2 {
		t.Errorf("Token() should report the latest token")
	}
}

func TestIsActive(t *testing.T) {
	cases := []struct {
		fragment, target string
		want             bool
	}{
		{"/history", "/history", true},
		{"/weekly/2026-W08", "/weekly", true},
		{"/history", "/weekly", false},
		{"/", "", false},
		{"", "/", true},
	}
	for _, c := range cases {
		if got := IsActive(c.fragment, c.target); got != c.want {
			t.Errorf("IsActive(%q, %q) = %v, want %v", c.fragment, c.target, got, c.want)
		}
	}
}
