package comments

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"gopkg.in/mgo.v2/bson"
)

// owners batches the author lookups of one thread snapshot. Every fetch of a
// level queues its keys and the loader issues one users query per window.
type owners struct {
	loader *dataloader.Loader
}

func newOwners(repo store.Repository) *owners {
	batch := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		ids := make([]bson.ObjectId, 0, len(keys))
		for _, key := range keys {
			if id, ok := common.ValidID(key.String()); ok {
				ids = append(ids, id)
			}
		}
		results := make([]*dataloader.Result, len(keys))
		if len(ids) == 0 {
			for i := range results {
				results[i] = &dataloader.Result{}
			}
			return results
		}
		docs, err := repo.Find(ctx, store.Users, store.Criteria{IDs: ids}, store.Page{})
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}
		byID := common.MapDocs(docs)
		for i, key := range keys {
			id, _ := common.ValidID(key.String())
			results[i] = &dataloader.Result{Data: byID[id]}
		}
		return results
	}
	return &owners{
		loader: dataloader.NewBatchedLoader(batch, dataloader.WithWait(time.Millisecond)),
	}
}

// load resolves the created_by user of every comment. Missing users are
// absent from the result.
func (o *owners) load(ctx context.Context, docs []bson.M) (common.DocsMap, error) {
	seen := common.NewIDSet()
	hexes := []string{}
	for _, doc := range docs {
		id := common.ObjectID(doc, "created_by")
		if id.Valid() && !seen.Has(id) {
			seen.Add(id)
			hexes = append(hexes, id.Hex())
		}
	}
	found := common.DocsMap{}
	if len(hexes) == 0 {
		return found, nil
	}
	values, errs := o.loader.LoadMany(ctx, dataloader.NewKeysFromStrings(hexes))()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for i, value := range values {
		if user, ok := value.(bson.M); ok && user != nil {
			found[bson.ObjectIdHex(hexes[i])] = user
		}
	}
	return found, nil
}
