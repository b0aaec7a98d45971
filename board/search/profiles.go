package search

import (
	"context"
	"sort"
	"strings"

	"github.com/lestrrat-go/ngram"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/users"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// candidate is a matched user as the ngram index sees it.
type candidate struct {
	doc   bson.M
	score float64
}

func (c *candidate) Id() string {
	return common.ObjectID(c.doc, "_id").Hex()
}

func (c *candidate) Content() string {
	company := common.String(common.Sub(common.Sub(c.doc, "credentials"), "employment"), "company")
	return strings.ToLower(common.String(c.doc, "username") + " " + company)
}

type candidates []*candidate

func (a candidates) Len() int           { return len(a) }
func (a candidates) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a candidates) Less(i, j int) bool { return a[i].score > a[j].score }

// profiles matches users whose username or employer contains text, closest
// trigram matches first.
func profiles(ctx context.Context, d deps, text string, v viewer.Viewer) ([]bson.M, error) {
	limit := d.Board().SearchLimit
	docs, err := d.Store().Find(ctx, store.Users, store.Criteria{Profile: text}, store.Page{Limit: limit})
	if err != nil {
		return nil, exceptions.Wrap(err, "could not search profiles")
	}

	list := make(candidates, len(docs))
	index := ngram.NewIndex(3)
	byID := make(map[string]*candidate, len(docs))
	for i, doc := range docs {
		list[i] = &candidate{doc: doc}
		byID[list[i].Id()] = list[i]
		if err := index.AddItem(list[i]); err != nil {
			log.Error(err)
		}
	}
	for res := range index.IterateSimilar(strings.ToLower(text), 0, len(docs)) {
		if c, ok := byID[res.Item.(*candidate).Id()]; ok {
			c.score = res.Score
		}
	}
	sort.Stable(list)

	results := make([]bson.M, len(list))
	for i, c := range list {
		results[i] = users.Decorate(c.doc, v)
	}
	return results, nil
}
