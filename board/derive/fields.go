// Package derive computes the viewer relative fields attached to every
// decorated document. All functions are total: missing arrays count as
// empty and the anonymous viewer gets false everywhere.
package derive

import (
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"gopkg.in/mgo.v2/bson"
)

func IsUpvoted(doc bson.M, v viewer.Viewer) bool {
	return holds(doc, "upvotes", v)
}

func IsDownvoted(doc bson.M, v viewer.Viewer) bool {
	return holds(doc, "downvotes", v)
}

func IsOwnContent(doc bson.M, v viewer.Viewer) bool {
	return v.Is(Owner(doc))
}

func IsFollowing(doc bson.M, v viewer.Viewer) bool {
	return v.Follows(Owner(doc))
}

func IsBookmarked(doc bson.M, v viewer.Viewer) bool {
	return v.Bookmarked(common.ObjectID(doc, "_id"))
}

// Total is the cardinality of an array field.
func Total(doc bson.M, field string) int {
	return common.Len(doc, field)
}

// Owner reads created_by whether it still holds the reference or the joined
// user document.
func Owner(doc bson.M) bson.ObjectId {
	if id := common.ObjectID(doc, "created_by"); id.Valid() {
		return id
	}
	return common.ObjectID(common.Sub(doc, "created_by"), "_id")
}

func holds(doc bson.M, field string, v viewer.Viewer) bool {
	if v.IsAnonymous() {
		return false
	}
	for _, id := range common.IDList(doc, field) {
		if id == v.ID {
			return true
		}
	}
	return false
}
