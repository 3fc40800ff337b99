// Package forumscope turns web-forum HTML into structured post records
// and aggregates them into business-intelligence signals. Post fragments
// are located with CSS selector fallback chains, per-post fields are
// extracted and normalized, content is classified with keyword and
// pattern matching, and the resulting records are summarized for
// reporting.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, bloom/).
package forumscope
