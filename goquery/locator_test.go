package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/forumscope/forumscope/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	t.Run("finds posts by class selector", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">First post body text</div>
<div class="post">Second post body text</div>
</body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		require.Len(t, fragments, 2)
		assert.Equal(t, ".post", fragments[0].Source)
		assert.Contains(t, fragments[0].Selection.Text(), "First post")
		assert.Contains(t, fragments[1].Selection.Text(), "Second post")
	})

	t.Run("earlier selector wins even when a later one matches more", func(t *testing.T) {
		t.Parallel()

		// One .message element, three .thread-item elements: the chain
		// stops at .message.
		html := `<html><body>
<div class="message">Only message here</div>
<div class="thread-item">a</div>
<div class="thread-item">b</div>
<div class="thread-item">c</div>
</body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		require.Len(t, fragments, 1)
		assert.Equal(t, ".message", fragments[0].Source)
	})

	t.Run("wildcard class selector matches compound class names", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="forum-postrow">A compound class still counts</div>
</body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		require.Len(t, fragments, 1)
		assert.Equal(t, `[class*="post"]`, fragments[0].Source)
	})

	t.Run("falls back to heuristic scan when no selector matches", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article class="entry">
  <span class="user-info">RivkaL</span>
  <span class="date">3 days ago</span>
  Does anyone have a recommendation for a good double stroller for city sidewalks?
</article>
</body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		require.Len(t, fragments, 1)
		assert.Equal(t, "fallback", fragments[0].Source)
	})

	t.Run("fallback rejects containers below two signals", func(t *testing.T) {
		t.Parallel()

		// Long enough text but no author/date/content children and only
		// a handful of words.
		html := `<html><body>
<article class="entry">Supercalifragilisticexpialidocious antidisestablishmentarianism floccinaucinihilipilification words</article>
</body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		assert.Empty(t, fragments)
	})

	t.Run("fallback rejects short containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article class="entry"><span class="user-info">A</span><span class="date">now</span>hi</article>
</body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		assert.Empty(t, fragments)
	})

	t.Run("page with no posts yields empty", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Nothing to see</p></body></html>`

		l := goquery.NewLocator()
		fragments := l.Locate(parseDoc(t, html))

		assert.Empty(t, fragments)
	})
}
