package feed

import (
	"context"
	"encoding/base64"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// maxSeen bounds how many question ids a cursor remembers.
const maxSeen = 200

// Seen is the set of questions a client was already shown, oldest first. It
// travels as an opaque token so the server keeps no session state.
type Seen []bson.ObjectId

func DecodeSeen(token string) (Seen, error) {
	if token == "" {
		return Seen{}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw)%12 != 0 {
		return nil, exceptions.Invalid("malformed discovery cursor")
	}
	seen := make(Seen, 0, len(raw)/12)
	for i := 0; i < len(raw); i += 12 {
		seen = append(seen, bson.ObjectId(raw[i:i+12]))
	}
	return seen, nil
}

func (s Seen) Token() string {
	raw := make([]byte, 0, len(s)*12)
	for _, id := range s {
		raw = append(raw, string(id)...)
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// With moves ids to the newest end and forgets the oldest beyond maxSeen.
func (s Seen) With(ids ...bson.ObjectId) Seen {
	fresh := common.NewIDSet(ids...)
	next := make(Seen, 0, len(s)+len(ids))
	for _, id := range s {
		if !fresh.Has(id) {
			next = append(next, id)
		}
	}
	next = append(next, ids...)
	if len(next) > maxSeen {
		next = next[len(next)-maxSeen:]
	}
	return next
}

// Discover draws a random set of public questions the viewer neither wrote
// nor downvoted, skipping those already in the cursor. It returns the
// questions and the cursor to send with the next request.
func Discover(ctx context.Context, d deps, v viewer.Viewer, cursor string, page, size int) ([]bson.M, string, error) {
	seen, err := DecodeSeen(cursor)
	if err != nil {
		return nil, "", err
	}
	shape := d.Board()
	if size < 1 {
		size = shape.DiscoverSize
	}
	if page < 1 {
		page = 1
	}
	where := Question.Scope(store.Criteria{
		NotIDs:         seen,
		NotCreatedBy:   v.ID,
		NotDownvotedBy: v.ID,
	})
	window := store.Page{Sample: shape.DiscoverPool, Skip: (page - 1) * size, Limit: size}
	list, err := fetch(ctx, d, store.Questions, where, v, window)
	if err != nil {
		return nil, "", err
	}
	shown := make([]bson.ObjectId, len(list))
	for i, q := range list {
		shown[i] = common.ObjectID(q, "_id")
	}
	log.Debugf("discover returned %d questions, %d already seen", len(list), len(seen))
	return list, seen.With(shown...).Token(), nil
}
