package votes

import (
	"github.com/tryanzu/quorum/board/store"
	"gopkg.in/mgo.v2/bson"
)

// VoteType should be an integer in the form of up or down.
type VoteType int

const (
	UP VoteType = iota
	DOWN
)

func (t VoteType) field() string {
	if t == UP {
		return "upvotes"
	}
	return "downvotes"
}

func (t VoteType) opposite() VoteType {
	if t == UP {
		return DOWN
	}
	return UP
}

// Status is the vote state a toggle leaves behind.
type Status string

const (
	Upvoted         Status = "Upvoted"
	RemovedUpvote   Status = "RemovedUpvote"
	Downvoted       Status = "Downvoted"
	RemovedDownvote Status = "RemovedDownvote"
)

// Ref points at a votable document by collection and id.
type Ref struct {
	Type store.Collection
	ID   bson.ObjectId
}

func (r Ref) VotableType() store.Collection {
	return r.Type
}

func (r Ref) VotableID() bson.ObjectId {
	return r.ID
}

// Votes is the public summary of a votable item.
type Votes struct {
	Up   int `bson:"up" json:"up"`
	Down int `bson:"down" json:"down"`
}
