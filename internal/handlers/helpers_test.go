package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blogly/blogly/internal/handlers"
	"github.com/blogly/blogly/internal/store"
	"github.com/blogly/blogly/internal/testutil"
	"github.com/blogly/blogly/internal/views"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

type app struct {
	t       *testing.T
	handler http.Handler
	store   *store.Store
}

func newApp(t *testing.T) *app {
	t.Helper()

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := store.New(testutil.OpenDB(t), store.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	v, err := views.New()
	require.NoError(t, err)
	flash, err := handlers.NewFlash("test-secret")
	require.NoError(t, err)

	return &app{
		t:       t,
		handler: handlers.NewRouter(s, v, flash, zap.NewNop()),
		store:   s,
	}
}

func (a *app) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func (a *app) post(path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("response set no flash cookie")
	return nil
}

// textByClass returns the trimmed text of every element carrying class, in
// document order.
func textByClass(t *testing.T, body, class string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, strings.Join(strings.Fields(nodeText(n)), " "))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
		b.WriteString(" ")
	}
	return b.String()
}
