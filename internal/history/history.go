// Package history provides client-side browsing over persisted conversation
// records: text search, page filtering, and aggregate statistics. It never
// mutates records and performs no network I/O of its own.
package history

import (
	"fmt"
	"strings"
	"time"

	"querydesk/pkg/querytypes"
)

// Filter selects a subset of history records. Zero values match everything.
type Filter struct {
	// Search matches case-insensitively against the stored question and the
	// response explanation.
	Search string
	// Page restricts records to one page context.
	Page string
}

// Apply returns the records matching the filter, preserving order.
func (f Filter) Apply(records []querytypes.HistoryRecord) []querytypes.HistoryRecord {
	matched := make([]querytypes.HistoryRecord, 0, len(records))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, record := range records {
		if f.Page != "" && record.PageName != f.Page {
			continue
		}
		if search != "" && !matchesSearch(record, search) {
			continue
		}
		matched = append(matched, record)
	}
	return matched
}

func matchesSearch(record querytypes.HistoryRecord, search string) bool {
	if strings.Contains(strings.ToLower(record.UserInput), search) {
		return true
	}
	return strings.Contains(strings.ToLower(record.ResponseData.Explanation), search)
}

// Stats aggregates a set of history records.
type Stats struct {
	Total            int
	Successful       int
	GraphQueries     int
	EmailSuggestions int
}

// Collect computes statistics over the given records. A record counts as
// successful when it produced SQL other than the not-relevant sentinel.
func Collect(records []querytypes.HistoryRecord) Stats {
	var stats Stats
	stats.Total = len(records)
	for _, record := range records {
		response := record.ResponseData
		if response.SQLQuery != "" && response.SQLQuery != querytypes.NotRelevantSQL {
			stats.Successful++
		}
		if response.IsGraphQuery {
			stats.GraphQueries++
		}
		if response.SuggestEmail {
			stats.EmailSuggestions++
		}
	}
	return stats
}

// Pages returns the distinct page names present in the records, in first-seen
// order.
func Pages(records []querytypes.HistoryRecord) []string {
	seen := make(map[string]bool)
	pages := make([]string, 0)
	for _, record := range records {
		if record.PageName == "" || seen[record.PageName] {
			continue
		}
		seen[record.PageName] = true
		pages = append(pages, record.PageName)
	}
	return pages
}

// RelativeDay renders a record timestamp the way the product displays it:
// "Today", "Yesterday", "N days ago" within a week, else the calendar date.
func RelativeDay(t time.Time, now time.Time) string {
	days := int(now.Sub(t).Hours()/24) + 1
	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days-1)
	default:
		return t.Format("2006-01-02")
	}
}
