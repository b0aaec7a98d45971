package questions

import (
	"context"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

func FindId(ctx context.Context, d deps, id bson.ObjectId) (q Question, err error) {
	doc, err := d.Store().FindID(ctx, store.Questions, id)
	if err == store.ErrNotFound {
		return q, exceptions.Missing("question not found")
	}
	if err != nil {
		return q, exceptions.Wrap(err, "could not load question")
	}
	err = common.FromDoc(doc, &q)
	return q, exceptions.Wrap(err, "malformed question")
}
