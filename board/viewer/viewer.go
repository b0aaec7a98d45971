package viewer

import (
	"context"

	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("viewer")

// Viewer is the identity a read is decorated for, plus the part of its user
// document every decoration needs. Built once per request.
type Viewer struct {
	ID        bson.ObjectId
	Following common.IDSet
	Bookmarks common.IDSet
}

// Anonymous has no id and empty sets.
var Anonymous = Viewer{}

func (v Viewer) IsAnonymous() bool {
	return !v.ID.Valid()
}

// Is reports whether id is the viewer. Always false for anonymous.
func (v Viewer) Is(id bson.ObjectId) bool {
	return !v.IsAnonymous() && v.ID == id
}

func (v Viewer) Follows(id bson.ObjectId) bool {
	return v.Following.Has(id)
}

func (v Viewer) Bookmarked(id bson.ObjectId) bool {
	return v.Bookmarks.Has(id)
}

// Resolve loads the viewer projection. Anonymous ids never hit the store and
// an unknown id degrades to a viewer with empty sets.
func Resolve(ctx context.Context, repo store.Repository, id bson.ObjectId) (Viewer, error) {
	if !id.Valid() {
		return Anonymous, nil
	}
	v := Viewer{ID: id}
	doc, err := repo.FindID(ctx, store.Users, id)
	if err == store.ErrNotFound {
		log.Debugf("viewer %s has no user document", id.Hex())
		return v, nil
	}
	if err != nil {
		return Anonymous, err
	}
	v.Following = common.NewIDSet(common.IDList(doc, "following")...)
	v.Bookmarks = common.NewIDSet(common.IDList(doc, "bookmarks")...)
	return v, nil
}
