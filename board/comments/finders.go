package comments

import (
	"context"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

func FindId(ctx context.Context, d deps, id bson.ObjectId) (comment Comment, err error) {
	doc, err := d.Store().FindID(ctx, store.Comments, id)
	if err == store.ErrNotFound {
		return comment, exceptions.Missing("comment not found")
	}
	if err != nil {
		return comment, exceptions.Wrap(err, "could not load comment")
	}
	err = common.FromDoc(doc, &comment)
	return comment, exceptions.Wrap(err, "malformed comment")
}

func exists(ctx context.Context, d deps, post bson.ObjectId, path Path) (bool, error) {
	n, err := d.Store().Count(ctx, store.Comments, store.Criteria{PostID: post, Path: path})
	return n > 0, err
}
