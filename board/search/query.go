package search

import (
	"strings"
	"time"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
)

// Result types besides the content kinds.
const Profile = "profile"

var windows = map[string]time.Duration{
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
	"year":  365 * 24 * time.Hour,
}

// Query is a search request as it comes from the client. Only Text is
// required.
type Query struct {
	Text   string `form:"q" json:"q" validate:"required,max=200"`
	Type   string `form:"type" json:"type"`
	Author string `form:"author" json:"author"`
	Time   string `form:"time" json:"time"`
}

// criteria validates the optional narrowing filters.
func (q Query) criteria(now time.Time) (where store.Criteria, err error) {
	if q.Author != "" {
		id, ok := common.ValidID(q.Author)
		if !ok {
			return where, exceptions.Invalid("invalid author id")
		}
		where.CreatedBy = id
	}
	if q.Time != "" {
		window, ok := windows[strings.ToLower(q.Time)]
		if !ok {
			return where, exceptions.Invalid("time must be one of day, week, month or year")
		}
		where.Since = now.Add(-window)
	}
	return where, nil
}

func (q Query) normalized() Query {
	q.Text = strings.TrimSpace(q.Text)
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	return q
}
