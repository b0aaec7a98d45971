package feed

import (
	"context"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// QuestionsWithAnswers is the home feed: answered public questions the viewer
// did not downvote, newest first, each with its first answer. The answers of
// the whole page are loaded and decorated as one batch.
func QuestionsWithAnswers(ctx context.Context, d deps, v viewer.Viewer, page int) ([]bson.M, error) {
	where := Question.Scope(store.Criteria{HasAnswers: true, NotDownvotedBy: v.ID})
	list, err := fetch(ctx, d, store.Questions, where, v, paginate(d, page, 0, -1))
	if err != nil || len(list) == 0 {
		return list, err
	}
	ids := make([]bson.ObjectId, len(list))
	for i, q := range list {
		ids[i] = common.ObjectID(q, "_id")
	}
	answers, err := d.Store().Find(ctx, store.Posts, Answer.Scope(store.Criteria{QuestionIDs: ids}), store.Page{Sort: 1})
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load answers")
	}
	seen := common.NewIDSet()
	firsts := make([]bson.M, 0, len(list))
	for _, a := range answers {
		if q := common.ObjectID(a, "question_id"); !seen.Has(q) {
			seen.Add(q)
			firsts = append(firsts, a)
		}
	}
	decorated, err := Decorate(ctx, d, store.Posts, firsts, v)
	if err != nil {
		return nil, err
	}
	first := make(map[bson.ObjectId]bson.M, len(firsts))
	for i, a := range firsts {
		first[common.ObjectID(a, "question_id")] = decorated[i]
	}
	for i, q := range list {
		if a, ok := first[ids[i]]; ok {
			q["answer"] = a
		}
	}
	return list, nil
}

// Detail is a question page.
type Detail struct {
	Question bson.M   `json:"question"`
	Answers  []bson.M `json:"answers"`
}

// QuestionBySlug finds the public question whose dash joined text matches the
// slug, along with every published answer, oldest first.
func QuestionBySlug(ctx context.Context, d deps, slug string, v viewer.Viewer) (Detail, error) {
	if slug == "" {
		return Detail{}, exceptions.Invalid("please provide a question slug")
	}
	doc, err := d.Store().FindOne(ctx, store.Questions, Question.Scope(store.Criteria{Slug: slug}))
	if err == store.ErrNotFound {
		return Detail{}, exceptions.Missing("question not found")
	}
	if err != nil {
		return Detail{}, exceptions.Wrap(err, "could not load question")
	}
	list, err := Decorate(ctx, d, store.Questions, []bson.M{doc}, v)
	if err != nil {
		return Detail{}, err
	}
	where := Answer.Scope(store.Criteria{QuestionID: common.ObjectID(doc, "_id")})
	answers, err := fetch(ctx, d, store.Posts, where, v, store.Page{Sort: 1})
	if err != nil {
		return Detail{}, err
	}
	return Detail{Question: list[0], Answers: answers}, nil
}

// ByAuthor lists what a user wrote, newest first. Owners also see their
// private questions.
func ByAuthor(ctx context.Context, d deps, kind Kind, owner bson.ObjectId, v viewer.Viewer, page, size int) ([]bson.M, error) {
	if !owner.Valid() {
		return nil, exceptions.Invalid("invalid user id")
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	where := kind.Scope(store.Criteria{CreatedBy: owner})
	if kind == Question && v.Is(owner) {
		where.Public = false
	}
	return fetch(ctx, d, kind.Collection(), where, v, paginate(d, page, size, -1))
}

// Bookmarks lists the answers and posts the viewer saved.
func Bookmarks(ctx context.Context, d deps, v viewer.Viewer, page, size int) ([]bson.M, error) {
	if v.IsAnonymous() {
		return nil, exceptions.Invalid("bookmarks need a signed in user")
	}
	if len(v.Bookmarks) == 0 {
		return []bson.M{}, nil
	}
	where := store.Criteria{IDs: v.Bookmarks.List(), Published: true}
	return fetch(ctx, d, store.Posts, where, v, paginate(d, page, size, -1))
}
