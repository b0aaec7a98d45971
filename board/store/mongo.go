package store

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/tryanzu/quorum/core/common"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// Mongo is the mgo backed repository. Every call runs on a copied session.
type Mongo struct {
	Database *mgo.Database
}

func NewMongo(db *mgo.Database) *Mongo {
	return &Mongo{Database: db}
}

func (m *Mongo) coll(name Collection) (*mgo.Collection, func()) {
	session := m.Database.Session.Copy()
	return m.Database.With(session).C(string(name)), session.Close
}

// indexes are the plain indexes EnsureIndexes declares through mgo.
func indexes() map[Collection][]mgo.Index {
	return map[Collection][]mgo.Index{
		Users: {
			{Key: []string{"username"}, Unique: true, Background: true},
			{Key: []string{"email"}, Unique: true, Sparse: true, Background: true},
		},
		Questions: {
			{Key: []string{"question"}, Unique: true, Background: true},
			{Key: []string{"$text:question"}, Background: true},
		},
		Posts: {
			{Key: []string{"$text:search_text"}, Background: true},
			{Key: []string{"created_by", "created_at"}, Background: true},
		},
		Comments: {
			// Two writers racing for the same sibling slot: the loser retries.
			{Key: []string{"post_id", "path_key"}, Unique: true, Background: true},
			{Key: []string{"post_id", "path"}, Background: true},
		},
	}
}

// liveAnswerIndex allows one published answer per (question, author). mgo's
// Index has no partial filter so the command is issued directly.
func liveAnswerIndex() bson.D {
	return bson.D{
		{Name: "createIndexes", Value: string(Posts)},
		{Name: "indexes", Value: []bson.M{{
			"name": "live_answer_per_author",
			"key": bson.D{
				{Name: "question_id", Value: 1},
				{Name: "created_by", Value: 1},
			},
			"unique":     true,
			"background": true,
			"partialFilterExpression": bson.M{
				"content_type": "answer",
				"is_published": true,
				"is_deleted":   false,
			},
		}}},
	}
}

// EnsureIndexes creates the text indexes used by the first search tier and
// the unique constraints the board relies on.
func (m *Mongo) EnsureIndexes() error {
	for name, list := range indexes() {
		c, done := m.coll(name)
		for _, index := range list {
			if err := c.EnsureIndex(index); err != nil {
				done()
				return err
			}
		}
		done()
	}

	session := m.Database.Session.Copy()
	defer session.Close()
	result := bson.M{}
	return m.Database.With(session).Run(liveAnswerIndex(), &result)
}

func (m *Mongo) Find(ctx context.Context, name Collection, where Criteria, page Page) ([]bson.M, error) {
	c, done := m.coll(name)
	defer done()

	list := []bson.M{}
	if page.Sample > 0 {
		pipeline := samplePipeline(name, where, page)
		err := c.Pipe(pipeline).All(&list)
		return list, err
	}

	q := c.Find(query(name, where))
	switch {
	case page.Sort > 0:
		q = q.Sort("created_at")
	case page.Sort < 0:
		q = q.Sort("-created_at")
	}
	if page.Skip > 0 {
		q = q.Skip(page.Skip)
	}
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	err := q.All(&list)
	return list, err
}

// samplePipeline mirrors the discovery feed: sample first, then drop the
// already seen ids, then window.
func samplePipeline(name Collection, where Criteria, page Page) []bson.M {
	excluded := where.NotIDs
	where.NotIDs = nil
	pipeline := []bson.M{
		{"$match": query(name, where)},
		{"$sample": bson.M{"size": page.Sample}},
	}
	if len(excluded) > 0 {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"_id": bson.M{"$nin": excluded}}})
	}
	if page.Skip > 0 {
		pipeline = append(pipeline, bson.M{"$skip": page.Skip})
	}
	if page.Limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": page.Limit})
	}
	return pipeline
}

func (m *Mongo) FindOne(ctx context.Context, name Collection, where Criteria) (bson.M, error) {
	c, done := m.coll(name)
	defer done()

	doc := bson.M{}
	err := c.Find(query(name, where)).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, ErrNotFound
	}
	return doc, err
}

func (m *Mongo) FindID(ctx context.Context, name Collection, id bson.ObjectId) (bson.M, error) {
	c, done := m.coll(name)
	defer done()

	doc := bson.M{}
	err := c.FindId(id).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, ErrNotFound
	}
	return doc, err
}

func (m *Mongo) Count(ctx context.Context, name Collection, where Criteria) (int, error) {
	c, done := m.coll(name)
	defer done()

	return c.Find(query(name, where)).Count()
}

func (m *Mongo) Contains(ctx context.Context, name Collection, id bson.ObjectId, field string, value interface{}) (bool, error) {
	c, done := m.coll(name)
	defer done()

	n, err := c.Find(bson.M{"_id": id, field: value}).Count()
	return n > 0, err
}

func (m *Mongo) CountComments(ctx context.Context, posts []bson.ObjectId) (map[bson.ObjectId]int, error) {
	c, done := m.coll(Comments)
	defer done()

	var groups []struct {
		ID    bson.ObjectId `bson:"_id"`
		Total int           `bson:"total"`
	}
	err := c.Pipe([]bson.M{
		{"$match": bson.M{"post_id": bson.M{"$in": posts}}},
		{"$group": bson.M{"_id": "$post_id", "total": bson.M{"$sum": 1}}},
	}).All(&groups)
	if err != nil {
		return nil, err
	}
	counts := make(map[bson.ObjectId]int, len(groups))
	for _, g := range groups {
		counts[g.ID] = g.Total
	}
	return counts, nil
}

func (m *Mongo) LastSibling(ctx context.Context, post bson.ObjectId, prefix []int) (int, bool, error) {
	c, done := m.coll(Comments)
	defer done()

	where := query(Comments, Criteria{PostID: post, PathPrefix: prefix, PathLen: len(prefix) + 1})
	at := strconv.Itoa(len(prefix))
	doc := bson.M{}
	err := c.Find(where).Sort("-path." + at).Select(bson.M{"path": 1}).One(&doc)
	if err == mgo.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	path, ok := common.Ints(doc["path"])
	if !ok || len(path) <= len(prefix) {
		return 0, false, nil
	}
	return path[len(prefix)], true, nil
}

func (m *Mongo) Insert(ctx context.Context, name Collection, doc interface{}) error {
	c, done := m.coll(name)
	defer done()

	err := c.Insert(doc)
	if mgo.IsDup(err) {
		return ErrDuplicate
	}
	return err
}

func (m *Mongo) Update(ctx context.Context, name Collection, id bson.ObjectId, change Change) error {
	c, done := m.coll(name)
	defer done()

	update := bson.M{}
	if len(change.Set) > 0 {
		update["$set"] = change.Set
	}
	if len(change.AddToSet) > 0 {
		update["$addToSet"] = change.AddToSet
	}
	if len(change.Pull) > 0 {
		update["$pull"] = change.Pull
	}
	if len(change.Inc) > 0 {
		update["$inc"] = change.Inc
	}
	err := c.UpdateId(id, update)
	if err == mgo.ErrNotFound {
		return ErrNotFound
	}
	if mgo.IsDup(err) {
		return ErrDuplicate
	}
	return err
}

// query translates criteria into a mongo filter.
func query(name Collection, where Criteria) bson.M {
	q := bson.M{}
	ids := bson.M{}
	if len(where.IDs) > 0 {
		ids["$in"] = where.IDs
	}
	if len(where.NotIDs) > 0 {
		ids["$nin"] = where.NotIDs
	}
	if len(ids) > 0 {
		q["_id"] = ids
	}

	owner := bson.M{}
	if where.CreatedBy.Valid() {
		q["created_by"] = where.CreatedBy
	} else if where.NotCreatedBy.Valid() {
		owner["$ne"] = where.NotCreatedBy
		q["created_by"] = owner
	}
	if where.NotDownvotedBy.Valid() {
		q["downvotes"] = bson.M{"$ne": where.NotDownvotedBy}
	}
	if !where.Since.IsZero() {
		q["created_at"] = bson.M{"$gte": where.Since}
	}
	if where.Text != "" {
		q["$text"] = bson.M{"$search": where.Text}
	}
	if where.Pattern != "" {
		q[searchField(name)] = contains(where.Pattern)
	}

	switch name {
	case Questions:
		if where.Public {
			q["is_public"] = true
		}
		if where.HasAnswers {
			q["answers.0"] = bson.M{"$exists": true}
		}
		if where.Slug != "" {
			q["$expr"] = bson.M{"$eq": []interface{}{
				bson.M{"$toLower": bson.M{"$replaceAll": bson.M{"input": "$question", "find": " ", "replacement": "-"}}},
				QuestionSlug(where.Slug),
			}}
		}
	case Posts:
		if where.Published {
			q["is_published"] = true
			q["is_deleted"] = bson.M{"$ne": true}
		}
		if where.Drafts {
			q["is_published"] = false
			q["is_deleted"] = bson.M{"$ne": true}
		}
		if where.ContentType != "" {
			q["content_type"] = where.ContentType
		}
		if where.QuestionID.Valid() {
			q["question_id"] = where.QuestionID
		} else if len(where.QuestionIDs) > 0 {
			q["question_id"] = bson.M{"$in": where.QuestionIDs}
		}
	case Comments:
		if where.PostID.Valid() {
			q["post_id"] = where.PostID
		}
		if where.Path != nil {
			q["path"] = where.Path
		}
		for i, n := range where.PathPrefix {
			q["path."+strconv.Itoa(i)] = n
		}
		if where.PathLen > 0 {
			q["path"] = bson.M{"$size": where.PathLen}
		}
	case Users:
		if where.Profile != "" {
			pattern := contains(where.Profile)
			q["$or"] = []bson.M{
				{"username": pattern},
				{"credentials.employment.company": pattern},
			}
		}
		if where.Username != "" {
			q["$expr"] = bson.M{"$eq": []interface{}{
				bson.M{"$toLower": bson.M{"$replaceAll": bson.M{"input": "$username", "find": " ", "replacement": "-"}}},
				strings.ToLower(where.Username),
			}}
		}
	}
	return q
}

func contains(s string) bson.RegEx {
	return bson.RegEx{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// searchField holds the precomputed plain text used by the substring tier.
func searchField(name Collection) string {
	if name == Questions {
		return "question"
	}
	return "search_text"
}
