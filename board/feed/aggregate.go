package feed

import (
	"context"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// Fetch lists content of one kind decorated for the viewer. Pages start at 1,
// size 0 means the configured page size and sort is -1 for newest first,
// anything else oldest first.
func Fetch(ctx context.Context, d deps, kind Kind, where store.Criteria, v viewer.Viewer, page, size, sort int) ([]bson.M, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	return fetch(ctx, d, kind.Collection(), kind.Scope(where), v, paginate(d, page, size, sort))
}

func paginate(d deps, page, size, sort int) store.Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = d.Board().PageSize
	}
	if sort >= 0 {
		sort = 1
	}
	return store.Page{Sort: sort, Skip: (page - 1) * size, Limit: size}
}

func fetch(ctx context.Context, d deps, c store.Collection, where store.Criteria, v viewer.Viewer, page store.Page) ([]bson.M, error) {
	docs, err := d.Store().Find(ctx, c, where, page)
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load "+string(c))
	}
	return Decorate(ctx, d, c, docs, v)
}

// Decorate joins owners, the referenced questions and comment counts for the
// whole batch at once, then shapes every document for the viewer.
func Decorate(ctx context.Context, d deps, c store.Collection, docs []bson.M, v viewer.Viewer) ([]bson.M, error) {
	list := make([]bson.M, 0, len(docs))
	if len(docs) == 0 {
		return list, nil
	}
	j, err := join(ctx, d, c, docs, v)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if c == store.Questions {
			list = append(list, question(doc, j, v))
			continue
		}
		list = append(list, post(doc, j, v))
	}
	return list, nil
}

func join(ctx context.Context, d deps, c store.Collection, docs []bson.M, v viewer.Viewer) (j joined, err error) {
	repo := d.Store()
	owners := common.NewIDSet()
	ids := make([]bson.ObjectId, 0, len(docs))
	questions := common.NewIDSet()
	for _, doc := range docs {
		if id := common.ObjectID(doc, "created_by"); id.Valid() {
			owners.Add(id)
		}
		if q := common.ObjectID(doc, "question_id"); q.Valid() {
			questions.Add(q)
		}
		ids = append(ids, common.ObjectID(doc, "_id"))
	}

	j.owners, err = byID(ctx, repo, store.Users, owners)
	if err != nil {
		return j, exceptions.Wrap(err, "could not load authors")
	}
	j.comments, err = repo.CountComments(ctx, ids)
	if err != nil {
		return j, exceptions.Wrap(err, "could not count comments")
	}
	if c == store.Questions {
		j.answered = common.NewIDSet()
		if v.IsAnonymous() {
			return j, nil
		}
		mine, err := repo.Find(ctx, store.Posts, store.Criteria{
			CreatedBy:   v.ID,
			ContentType: string(Answer),
			Published:   true,
		}, store.Page{})
		if err != nil {
			return j, exceptions.Wrap(err, "could not load viewer answers")
		}
		for _, answer := range mine {
			j.answered.Add(common.ObjectID(answer, "question_id"))
		}
		return j, nil
	}

	j.questions, err = byID(ctx, repo, store.Questions, questions)
	if err != nil {
		return j, exceptions.Wrap(err, "could not load questions")
	}
	return j, nil
}

func byID(ctx context.Context, repo store.Repository, c store.Collection, ids common.IDSet) (common.DocsMap, error) {
	if len(ids) == 0 {
		return common.DocsMap{}, nil
	}
	docs, err := repo.Find(ctx, c, store.Criteria{IDs: ids.List()}, store.Page{})
	if err != nil {
		return nil, err
	}
	return common.MapDocs(docs), nil
}
