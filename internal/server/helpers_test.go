package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestParsePaginationClamping(t *testing.T) {
	t.Parallel()

	var got Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, 10, 50)
		return c.SendStatus(http.StatusOK)
	})

	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 10, 0},
		{"?limit=25&offset=5", 25, 5},
		{"?limit=0", 10, 0},
		{"?limit=-3", 10, 0},
		{"?limit=500", 50, 0},
		{"?offset=-7", 10, 0},
		{"?limit=junk&offset=junk", 10, 0},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
		if _, err := app.Test(req); err != nil {
			t.Fatalf("app.Test %q: %v", tc.query, err)
		}
		if got.Limit != tc.wantLimit || got.Offset != tc.wantOffset {
			t.Fatalf("query %q: got limit=%d offset=%d, want limit=%d offset=%d",
				tc.query, got.Limit, got.Offset, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestContentSnippet(t *testing.T) {
	t.Parallel()

	if got := contentSnippet("short"); got != "short" {
		t.Fatalf("short content altered: %q", got)
	}

	exact := strings.Repeat("x", 100)
	if got := contentSnippet(exact); got != exact {
		t.Fatalf("exact-length content altered")
	}

	long := strings.Repeat("x", 101)
	got := contentSnippet(long)
	if got != strings.Repeat("x", 100)+"..." {
		t.Fatalf("unexpected snippet %q", got)
	}

	// rune-based, not byte-based
	multibyte := strings.Repeat("é", 150)
	got = contentSnippet(multibyte)
	if got != strings.Repeat("é", 100)+"..." {
		t.Fatalf("multibyte snippet truncated on byte boundary")
	}
}

func TestHumanizeParam(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"id":        "ID",
		"userId":    "user ID",
		"profileId": "profile ID",
	}
	for in, want := range cases {
		if got := humanizeParam(in); got != want {
			t.Fatalf("humanizeParam(%q) = %q, want %q", in, got, want)
		}
	}
}
