// Package summary defines the summarization vocabulary shared by the client
// and the request builder.
//
// The client accepts a lowercase vocabulary on the command line ("paragraph",
// "bullet", "short", ...) while the backend expects a fixed uppercase wire
// enumeration ("PARAGRAPH", "BULLET_POINT", "SHORT", ...). Parsing is
// case-insensitive and the wire form is always uppercase.
package summary

import (
	"fmt"
	"strings"
)

// Mode selects the output shape of a summary.
type Mode string

const (
	// ModeParagraph produces flowing prose.
	ModeParagraph Mode = "paragraph"
	// ModeBullet produces a bullet-point list.
	ModeBullet Mode = "bullet"
)

// ParseMode parses the client-side mode vocabulary, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paragraph":
		return ModeParagraph, nil
	case "bullet":
		return ModeBullet, nil
	default:
		return "", fmt.Errorf("invalid mode %q (want paragraph or bullet)", s)
	}
}

// Wire returns the uppercase enumeration the backend expects.
func (m Mode) Wire() string {
	if m == ModeBullet {
		return "BULLET_POINT"
	}
	return "PARAGRAPH"
}

// Length selects how long the summary should be.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// ParseLength parses the client-side length vocabulary, case-insensitively.
func ParseLength(s string) (Length, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return LengthShort, nil
	case "medium":
		return LengthMedium, nil
	case "long":
		return LengthLong, nil
	default:
		return "", fmt.Errorf("invalid summary length %q (want short, medium, or long)", s)
	}
}

// Wire returns the uppercase enumeration the backend expects.
func (l Length) Wire() string {
	return strings.ToUpper(string(l))
}

// Result is the backend's summarization payload, returned verbatim. The
// client performs no post-processing; call sites that display word counts
// recompute them independently.
type Result struct {
	Summary       string `json:"summary"`
	SentenceCount int    `json:"sentenceCount"`
	WordCount     int    `json:"wordCount"`
}

// TimeFilter bounds the admin history query.
type TimeFilter string

const (
	FilterDay   TimeFilter = "DAY"
	FilterWeek  TimeFilter = "WEEK"
	FilterMonth TimeFilter = "MONTH"
	FilterAll   TimeFilter = "ALL"
)

// ParseTimeFilter parses an admin history time filter, case-insensitively.
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAY":
		return FilterDay, nil
	case "WEEK":
		return FilterWeek, nil
	case "MONTH":
		return FilterMonth, nil
	case "ALL":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("invalid time filter %q (want day, week, month, or all)", s)
	}
}

// HistoryItem is one entry of the server-side usage history.
type HistoryItem struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	InputText   string `json:"inputText"`
	SummaryText string `json:"summaryText"`
	Timestamp   string `json:"timestamp"`
}

// User is one account record from the admin user listing.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
