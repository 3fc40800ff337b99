package goquery_test

import (
	"testing"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements forumscope.PageExtractor at compile time.
var _ forumscope.PageExtractor = (*goquery.Extractor)(nil)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("keeps the long post and drops the short one", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post"><div class="content">How to choose a pediatrician? I'm so frustrated.</div></div>
<div class="post"><div class="content">Too short</div></div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "pregnancy_childbirth")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].IsQuestion)
		assert.Contains(t, records[0].SentimentIndicators, "frustrated")
		assert.Equal(t, "pregnancy_childbirth", records[0].Section)
		assert.Equal(t, fixedNow(), records[0].ExtractedAt)
	})

	t.Run("extracts every field", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post" id="p-1234">
  <h3>Stroller recommendations</h3>
  <span class="author">Sarah</span>
  <span class="timestamp" datetime="2024-03-15T08:30:00Z">this morning</span>
  <div class="content">
    Which double stroller would you buy? My doctor says walking helps.
    <a href="https://www.amazon.com/dp/B01">this one</a>
  </div>
  <span class="replies">12 replies</span>
  <span class="views">340 views</span>
  <span class="tag">gear</span>
  <span class="tag">strollers</span>
</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "p-1234", rec.PostID)
		assert.Equal(t, "SXXXh", rec.Author)
		assert.Equal(t, "2024-03-15T08:30:00Z", rec.Timestamp)
		assert.Equal(t, "Stroller recommendations", rec.Title)
		assert.Equal(t, 12, rec.RepliesCount)
		assert.Equal(t, 340, rec.ViewsCount)
		assert.Equal(t, []string{"gear", "strollers"}, rec.Tags)
		require.Len(t, rec.Links, 1)
		assert.Equal(t, forumscope.LinkProduct, rec.Links[0].Type)
		assert.Equal(t, "this one", rec.Links[0].Text)
		assert.True(t, rec.IsQuestion)
		assert.Contains(t, rec.ResourceMentions, "doctor")
	})

	t.Run("strips quotes signatures and edit notices from content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">
  <div class="content">
    <blockquote class="quoted">Original poster wrote something here</blockquote>
    My actual reply about the stroller question goes here.
    <div class="signature">~ sent from my phone ~</div>
    <div class="edit-note">Last edited yesterday</div>
  </div>
</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "My actual reply about the stroller question goes here.", records[0].Content)
	})

	t.Run("quoted links are stripped along with the quote", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">
  <div class="content">
    <blockquote class="quote"><a href="https://example.com/old">old link</a>quoted text</blockquote>
    My answer is that you should read <a href="https://example.com/guide.pdf">the guide</a> first.
  </div>
</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Len(t, records[0].Links, 1)
		assert.Equal(t, "https://example.com/guide.pdf", records[0].Links[0].URL)
		assert.Equal(t, forumscope.LinkDocument, records[0].Links[0].Type)
	})

	t.Run("relative timestamps resolve against the extractor clock", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">
  <span class="date">2 hours ago</span>
  <div class="content">Long enough content for a record to be kept here.</div>
</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2024-03-15T10:00:00Z", records[0].Timestamp)
	})

	t.Run("post id found on a descendant", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">
  <a id="post-998877"></a>
  <div class="content">Long enough content for a record to be kept here.</div>
</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "post-998877", records[0].PostID)
	})

	t.Run("counts default to zero without digits", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">
  <span class="replies">no replies yet</span>
  <div class="content">Long enough content for a record to be kept here.</div>
</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Zero(t, records[0].RepliesCount)
		assert.Zero(t, records[0].ViewsCount)
	})

	t.Run("whole fragment text backs up missing content element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="post">This post has no content wrapper but plenty of text to keep.</div>
</body></html>`

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage(html, "general_discussion")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "This post has no content wrapper but plenty of text to keep.", records[0].Content)
	})

	t.Run("empty page yields no records", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(goquery.WithNow(fixedNow))
		records, err := e.ExtractPage("<html><body><p>hi</p></body></html>", "general_discussion")

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
