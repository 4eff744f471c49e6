package pages

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parsePage(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findElements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		found = append(found, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, findElements(c, tag)...)
	}
	return found
}

func elementText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func TestHTTPStatusPage(t *testing.T) {
	t.Run("title and heading show the code and reason phrase", func(t *testing.T) {
		doc := parsePage(t, HTTPStatusPage(http.StatusNotFound, ""))

		title := findElement(doc, "title")
		require.NotNil(t, title)
		assert.Equal(t, "404 — Not Found", elementText(title))

		h1 := findElement(doc, "h1")
		require.NotNil(t, h1)
		assert.Equal(t, "404 — Not Found", elementText(h1))
	})

	t.Run("message appears in a paragraph", func(t *testing.T) {
		doc := parsePage(t, HTTPStatusPage(http.StatusNotFound, "Path '/x' not found."))

		p := findElement(doc, "p")
		require.NotNil(t, p)
		assert.Equal(t, "Path '/x' not found.", elementText(p))
	})

	t.Run("empty message renders no paragraph", func(t *testing.T) {
		doc := parsePage(t, HTTPStatusPage(http.StatusNotFound, ""))
		assert.Nil(t, findElement(doc, "p"))
	})

	t.Run("message markup is escaped", func(t *testing.T) {
		page := HTTPStatusPage(http.StatusNotFound, "<script>alert(1)</script>")
		assert.NotContains(t, page, "<script>")
		assert.Contains(t, page, "&lt;script&gt;")
	})
}

func TestHTTPStatusPageHTML(t *testing.T) {
	t.Run("message and content are pasted unescaped", func(t *testing.T) {
		page := HTTPStatusPageHTML(http.StatusOK, "<em>fine</em>", "<div>extra</div>")
		assert.Contains(t, page, "<em>fine</em>")
		assert.Contains(t, page, "<div>extra</div>")
	})
}

func TestCreatedAtPage(t *testing.T) {
	doc := parsePage(t, CreatedAtPage("/new/item"))

	a := findElement(doc, "a")
	require.NotNil(t, a)
	assert.Equal(t, "/new/item", attrValue(a, "href"))
	assert.Equal(t, "/new/item", elementText(a))

	title := findElement(doc, "title")
	require.NotNil(t, title)
	assert.Equal(t, "201 — Created", elementText(title))
}

func TestRedirectPages(t *testing.T) {
	t.Run("temporary redirect", func(t *testing.T) {
		doc := parsePage(t, TemporaryRedirectPage("/elsewhere"))

		title := findElement(doc, "title")
		require.NotNil(t, title)
		assert.Equal(t, "307 — Temporary Redirect", elementText(title))

		a := findElement(doc, "a")
		require.NotNil(t, a)
		assert.Equal(t, "/elsewhere", attrValue(a, "href"))
	})

	t.Run("see other", func(t *testing.T) {
		doc := parsePage(t, SeeOtherPage("/elsewhere"))

		title := findElement(doc, "title")
		require.NotNil(t, title)
		assert.Equal(t, "303 — See Other", elementText(title))
	})

	t.Run("target url is escaped", func(t *testing.T) {
		page := SeeOtherPage(`/x"><script>`)
		assert.NotContains(t, page, "<script>")
	})
}

func TestBadArgumentsPage(t *testing.T) {
	t.Run("lists arguments sorted by name", func(t *testing.T) {
		doc := parsePage(t, BadArgumentsPage(map[string]string{
			"zebra": "out of range",
			"apple": "not a fruit",
		}))

		items := findElements(doc, "li")
		require.Len(t, items, 2)

		first := findElement(items[0], "span")
		require.NotNil(t, first)
		assert.Equal(t, "apple", elementText(first))

		second := findElement(items[1], "span")
		require.NotNil(t, second)
		assert.Equal(t, "zebra", elementText(second))
	})

	t.Run("list carries the expected classes", func(t *testing.T) {
		doc := parsePage(t, BadArgumentsPage(map[string]string{"n": "bad"}))

		ul := findElement(doc, "ul")
		require.NotNil(t, ul)
		assert.Equal(t, "bad-arguments", attrValue(ul, "class"))

		li := findElement(ul, "li")
		require.NotNil(t, li)
		assert.Equal(t, "argument", attrValue(li, "class"))

		spans := findElements(li, "span")
		require.Len(t, spans, 2)
		assert.Equal(t, "argument-name", attrValue(spans[0], "class"))
		assert.Equal(t, "error-message", attrValue(spans[1], "class"))
		assert.Equal(t, "bad", elementText(spans[1]))
	})

	t.Run("names and messages are escaped", func(t *testing.T) {
		page := BadArgumentsPage(map[string]string{"<q>": "value <small>"})
		assert.NotContains(t, page, "<q>")
		assert.NotContains(t, page, "<small>")
	})
}

func TestBadArgumentsList(t *testing.T) {
	t.Run("empty map yields an empty string", func(t *testing.T) {
		assert.Empty(t, BadArgumentsList(nil))
	})
}
