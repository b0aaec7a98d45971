package votes

import (
	"github.com/tryanzu/quorum/board/store"
	"gopkg.in/mgo.v2/bson"
)

type deps interface {
	Store() store.Repository
}

// Votable is anything holding upvotes/downvotes sets.
type Votable interface {
	VotableType() store.Collection
	VotableID() bson.ObjectId
}
