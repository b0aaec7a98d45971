package derive

import (
	"github.com/tryanzu/quorum/board/viewer"
	"gopkg.in/mgo.v2/bson"
)

// Decoration keys.
const (
	TotalUpvotes   = "total_upvotes"
	TotalDownvotes = "total_downvotes"
	TotalFollowers = "total_followers"
	TotalComments  = "total_comments"
	Upvoted        = "is_upvoted"
	Downvoted      = "is_downvoted"
	Bookmarked     = "is_bookmarked"
	OwnContent     = "is_own_content"
	Following      = "is_following"
)

// Apply attaches the derived fields to doc, which must still hold its raw vote
// arrays. owner is the joined user document, possibly nil.
func Apply(doc bson.M, owner bson.M, v viewer.Viewer, comments int) bson.M {
	doc[TotalUpvotes] = Total(doc, "upvotes")
	doc[TotalDownvotes] = Total(doc, "downvotes")
	doc[TotalFollowers] = Total(owner, "followers")
	doc[TotalComments] = comments
	doc[Upvoted] = IsUpvoted(doc, v)
	doc[Downvoted] = IsDownvoted(doc, v)
	doc[Bookmarked] = IsBookmarked(doc, v)
	doc[OwnContent] = IsOwnContent(doc, v)
	doc[Following] = IsFollowing(doc, v)
	return doc
}

// Booleans lists the viewer relative flags Apply sets.
var Booleans = []string{Upvoted, Downvoted, Bookmarked, OwnContent, Following}
