package analyze

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/mattn/go-runewidth"
)

// Report renders a plain-text business-intelligence report over one
// export. The now argument timestamps the header.
func Report(data map[string][]*forumscope.PostRecord, now time.Time) string {
	stats := Summarize(data)

	var b strings.Builder

	b.WriteString("FORUM BUSINESS INTELLIGENCE REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Posts Analyzed: %d\n\n", stats.TotalPosts)

	b.WriteString("POSTS BY SECTION\n")
	writeStatTable(&b, sectionRows(stats.Sections))
	b.WriteString("\n")

	b.WriteString("ENGAGEMENT\n")
	writeStatTable(&b, []statRow{
		{"Average replies", fmt.Sprintf("%.1f", stats.Engagement.AvgReplies)},
		{"Average views", fmt.Sprintf("%.1f", stats.Engagement.AvgViews)},
		{"High engagement posts", fmt.Sprintf("%d", stats.Engagement.HighEngagementPosts)},
		{"Questions", fmt.Sprintf("%d", stats.Content.Questions)},
		{"Answers", fmt.Sprintf("%d", stats.Content.Answers)},
		{"Resource mentions", fmt.Sprintf("%d", stats.Content.ResourceMentions)},
	})
	b.WriteString("\n")

	b.WriteString("BUSINESS OPPORTUNITIES\n")
	opportunityRows := make([]statRow, 0, len(forumscope.ScoredOpportunities))
	for _, category := range forumscope.ScoredOpportunities {
		opportunityRows = append(opportunityRows, statRow{
			capitalize(category), fmt.Sprintf("%d", stats.Opportunities[category]),
		})
	}
	writeStatTable(&b, opportunityRows)
	b.WriteString("\n")

	if mentions := TopMentions(data); len(mentions) > 0 {
		b.WriteString("TOP MENTIONED PRODUCTS\n")
		for _, m := range mentions[:min(len(mentions), 10)] {
			fmt.Fprintf(&b, "  - %s: %d mentions\n", m.Phrase, m.Count)
		}
		b.WriteString("\n")
	}

	if topics := LearningTopics(data); len(topics) > 0 {
		b.WriteString("TOP LEARNING TOPICS\n")
		for _, t := range topics[:min(len(topics), 10)] {
			fmt.Fprintf(&b, "  - %s: %d posts\n", t.Phrase, t.Count)
		}
		b.WriteString("\n")
	}

	if points := PainPoints(data); len(points) > 0 {
		b.WriteString("TOP PAIN POINTS\n")
		for i, p := range points[:min(len(points), 10)] {
			fmt.Fprintf(&b, "%d. %s (Section: %s, Engagement: %d)\n", i+1, p.Text, p.Section, p.Engagement)
		}
		b.WriteString("\n")
	}

	gaps := ResourceGaps(data)
	sections := make([]string, 0, len(gaps))
	for section := range gaps {
		if len(gaps[section]) > 0 {
			sections = append(sections, section)
		}
	}
	sort.Strings(sections)
	if len(sections) > 0 {
		b.WriteString("RESOURCE GAPS BY SECTION\n")
		for _, section := range sections {
			fmt.Fprintf(&b, "  %s:\n", section)
			for _, gap := range gaps[section][:min(len(gaps[section]), 5)] {
				fmt.Fprintf(&b, "    - %s\n", gap)
			}
		}
	}

	return b.String()
}

type statRow struct {
	label string
	value string
}

// writeStatTable writes label/value rows with values aligned past the
// widest label. Widths are display widths, not byte counts.
func writeStatTable(b *strings.Builder, rows []statRow) {
	width := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.label); w > width {
			width = w
		}
	}
	for _, row := range rows {
		fmt.Fprintf(b, "  %s  %s\n", runewidth.FillRight(row.label, width), row.value)
	}
}

func sectionRows(sections map[string]int) []statRow {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]statRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, statRow{name, fmt.Sprintf("%d", sections[name])})
	}
	return rows
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
