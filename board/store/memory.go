package store

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tryanzu/quorum/core/common"
	"gopkg.in/mgo.v2/bson"
)

// Memory is a process local repository with the same matching semantics as
// the mongo one. Used by tests and the seeded demo command.
type Memory struct {
	mu   sync.RWMutex
	docs map[Collection][]bson.M
	rand *rand.Rand
}

func NewMemory() *Memory {
	return &Memory{
		docs: make(map[Collection][]bson.M),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed fixes the random source used by sampling.
func (m *Memory) Seed(seed int64) {
	m.mu.Lock()
	m.rand = rand.New(rand.NewSource(seed))
	m.mu.Unlock()
}

func (m *Memory) Find(ctx context.Context, name Collection, where Criteria, page Page) ([]bson.M, error) {
	// Sampling draws from the shared random source.
	if page.Sample > 0 {
		m.mu.Lock()
		defer m.mu.Unlock()
	} else {
		m.mu.RLock()
		defer m.mu.RUnlock()
	}

	excluded := where.NotIDs
	if page.Sample > 0 {
		where.NotIDs = nil
	}
	list := m.match(name, where)
	if page.Sample > 0 {
		list = m.sample(list, page.Sample)
		if len(excluded) > 0 {
			skip := common.NewIDSet(excluded...)
			kept := list[:0]
			for _, doc := range list {
				if !skip.Has(common.ObjectID(doc, "_id")) {
					kept = append(kept, doc)
				}
			}
			list = kept
		}
	} else if page.Sort != 0 {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := common.Time(list[i], "created_at"), common.Time(list[j], "created_at")
			if page.Sort > 0 {
				return a.Before(b)
			}
			return a.After(b)
		})
	}
	return window(list, page), nil
}

func window(list []bson.M, page Page) []bson.M {
	if page.Skip > 0 {
		if page.Skip >= len(list) {
			return []bson.M{}
		}
		list = list[page.Skip:]
	}
	if page.Limit > 0 && page.Limit < len(list) {
		list = list[:page.Limit]
	}
	out := make([]bson.M, len(list))
	for i, doc := range list {
		out[i] = clone(doc)
	}
	return out
}

func (m *Memory) sample(list []bson.M, size int) []bson.M {
	shuffled := make([]bson.M, len(list))
	copy(shuffled, list)
	m.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if size < len(shuffled) {
		shuffled = shuffled[:size]
	}
	return shuffled
}

func (m *Memory) FindOne(ctx context.Context, name Collection, where Criteria) (bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.match(name, where)
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return clone(list[0]), nil
}

func (m *Memory) FindID(ctx context.Context, name Collection, id bson.ObjectId) (bson.M, error) {
	return m.FindOne(ctx, name, Criteria{IDs: []bson.ObjectId{id}})
}

func (m *Memory) Count(ctx context.Context, name Collection, where Criteria) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.match(name, where)), nil
}

func (m *Memory) Contains(ctx context.Context, name Collection, id bson.ObjectId, field string, value interface{}) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc := m.byID(name, id)
	if doc == nil {
		return false, nil
	}
	arr, _ := doc[field].([]interface{})
	return indexOf(arr, value) >= 0, nil
}

func (m *Memory) CountComments(ctx context.Context, posts []bson.ObjectId) (map[bson.ObjectId]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := common.NewIDSet(posts...)
	counts := map[bson.ObjectId]int{}
	for _, doc := range m.docs[Comments] {
		if post := common.ObjectID(doc, "post_id"); wanted.Has(post) {
			counts[post]++
		}
	}
	return counts, nil
}

func (m *Memory) LastSibling(ctx context.Context, post bson.ObjectId, prefix []int) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		last  int
		found bool
	)
	for _, doc := range m.match(Comments, Criteria{PostID: post, PathPrefix: prefix, PathLen: len(prefix) + 1}) {
		path, _ := common.Ints(doc["path"])
		if n := path[len(prefix)]; !found || n > last {
			last, found = n, true
		}
	}
	return last, found, nil
}

func (m *Memory) Insert(ctx context.Context, name Collection, v interface{}) error {
	doc, err := common.ToDoc(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !common.ObjectID(doc, "_id").Valid() {
		doc["_id"] = bson.NewObjectId()
	}
	if m.duplicates(name, doc) {
		return ErrDuplicate
	}
	m.docs[name] = append(m.docs[name], doc)
	return nil
}

// duplicates enforces the same unique keys the mongo indexes declare.
func (m *Memory) duplicates(name Collection, doc bson.M) bool {
	id := common.ObjectID(doc, "_id")
	for _, other := range m.docs[name] {
		if common.ObjectID(other, "_id") == id {
			return true
		}
		switch name {
		case Questions:
			if common.String(other, "question") == common.String(doc, "question") {
				return true
			}
		case Users:
			if common.String(other, "username") == common.String(doc, "username") {
				return true
			}
		case Posts:
			if liveAnswer(doc) && liveAnswer(other) &&
				common.ObjectID(other, "question_id") == common.ObjectID(doc, "question_id") &&
				common.ObjectID(other, "created_by") == common.ObjectID(doc, "created_by") {
				return true
			}
		case Comments:
			key := common.String(doc, "path_key")
			if key != "" && common.ObjectID(other, "post_id") == common.ObjectID(doc, "post_id") && common.String(other, "path_key") == key {
				return true
			}
		}
	}
	return false
}

func liveAnswer(doc bson.M) bool {
	return common.String(doc, "content_type") == "answer" && common.Bool(doc, "is_published") && !common.Bool(doc, "is_deleted")
}

func (m *Memory) Update(ctx context.Context, name Collection, id bson.ObjectId, change Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := m.byID(name, id)
	if doc == nil {
		return ErrNotFound
	}
	for k, v := range change.Set {
		setPath(doc, k, normalize(v))
	}
	for k, v := range change.AddToSet {
		arr, _ := getPath(doc, k).([]interface{})
		if indexOf(arr, v) < 0 {
			arr = append(arr, normalize(v))
		}
		setPath(doc, k, arr)
	}
	for k, v := range change.Pull {
		arr, _ := getPath(doc, k).([]interface{})
		kept := make([]interface{}, 0, len(arr))
		for _, item := range arr {
			if item != v {
				kept = append(kept, item)
			}
		}
		setPath(doc, k, kept)
	}
	for k, v := range change.Inc {
		current, _ := common.Int(getPath(doc, k))
		delta, _ := common.Int(v)
		setPath(doc, k, current+delta)
	}
	return nil
}

func (m *Memory) byID(name Collection, id bson.ObjectId) bson.M {
	for _, doc := range m.docs[name] {
		if common.ObjectID(doc, "_id") == id {
			return doc
		}
	}
	return nil
}

func (m *Memory) match(name Collection, where Criteria) []bson.M {
	list := []bson.M{}
	for _, doc := range m.docs[name] {
		if matches(name, doc, where) {
			list = append(list, doc)
		}
	}
	return list
}

func matches(name Collection, doc bson.M, where Criteria) bool {
	id := common.ObjectID(doc, "_id")
	if len(where.IDs) > 0 && !common.NewIDSet(where.IDs...).Has(id) {
		return false
	}
	if len(where.NotIDs) > 0 && common.NewIDSet(where.NotIDs...).Has(id) {
		return false
	}
	owner := common.ObjectID(doc, "created_by")
	if where.CreatedBy.Valid() && owner != where.CreatedBy {
		return false
	}
	if where.NotCreatedBy.Valid() && owner == where.NotCreatedBy {
		return false
	}
	if where.NotDownvotedBy.Valid() && common.NewIDSet(common.IDList(doc, "downvotes")...).Has(where.NotDownvotedBy) {
		return false
	}
	if !where.Since.IsZero() && common.Time(doc, "created_at").Before(where.Since) {
		return false
	}
	if where.Text != "" && !textMatch(textField(name, doc), where.Text) {
		return false
	}
	if where.Pattern != "" && !substring(common.String(doc, searchField(name)), where.Pattern) {
		return false
	}

	switch name {
	case Questions:
		if where.Public && !common.Bool(doc, "is_public") {
			return false
		}
		if where.HasAnswers && common.Len(doc, "answers") == 0 {
			return false
		}
		if where.Slug != "" && Slugify(common.String(doc, "question")) != QuestionSlug(where.Slug) {
			return false
		}
	case Posts:
		deleted := common.Bool(doc, "is_deleted")
		published := common.Bool(doc, "is_published")
		if where.Published && (deleted || !published) {
			return false
		}
		if where.Drafts && (deleted || published) {
			return false
		}
		if where.ContentType != "" && common.String(doc, "content_type") != where.ContentType {
			return false
		}
		if where.QuestionID.Valid() && common.ObjectID(doc, "question_id") != where.QuestionID {
			return false
		}
	case Comments:
		if where.PostID.Valid() && common.ObjectID(doc, "post_id") != where.PostID {
			return false
		}
		path, _ := common.Ints(doc["path"])
		if where.Path != nil && !equalInts(path, where.Path) {
			return false
		}
		if where.PathLen > 0 && len(path) != where.PathLen {
			return false
		}
		if len(where.PathPrefix) > 0 && (len(path) < len(where.PathPrefix) || !equalInts(path[:len(where.PathPrefix)], where.PathPrefix)) {
			return false
		}
	case Users:
		if where.Profile != "" {
			employment := common.Sub(common.Sub(doc, "credentials"), "employment")
			if !substring(common.String(doc, "username"), where.Profile) && !substring(common.String(employment, "company"), where.Profile) {
				return false
			}
		}
		if where.Username != "" && Slugify(common.String(doc, "username")) != strings.ToLower(where.Username) {
			return false
		}
	}
	return true
}

func textField(name Collection, doc bson.M) string {
	return common.String(doc, searchField(name))
}

// textMatch approximates a $text search: any whole query term present.
func textMatch(content, q string) bool {
	terms := Tokenize(content)
	if len(terms) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	for _, t := range Tokenize(q) {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func substring(s, pattern string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(pattern))
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func indexOf(arr []interface{}, v interface{}) int {
	for i, item := range arr {
		if item == v {
			return i
		}
	}
	return -1
}

// normalize stores slices the way a decoded document carries them.
func normalize(v interface{}) interface{} {
	switch list := v.(type) {
	case []bson.ObjectId:
		out := make([]interface{}, len(list))
		for i, id := range list {
			out[i] = id
		}
		return out
	case []string:
		out := make([]interface{}, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	case []int:
		out := make([]interface{}, len(list))
		for i, n := range list {
			out[i] = n
		}
		return out
	}
	return v
}

func getPath(doc bson.M, key string) interface{} {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		doc = common.Sub(doc, p)
	}
	if doc == nil {
		return nil
	}
	return doc[parts[len(parts)-1]]
}

func setPath(doc bson.M, key string, v interface{}) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next := common.Sub(doc, p)
		if next == nil {
			next = bson.M{}
			doc[p] = next
		}
		doc = next
	}
	doc[parts[len(parts)-1]] = v
}

// clone copies the top level and the arrays, enough so callers can decorate
// results without touching stored state.
func clone(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case []interface{}:
			c := make([]interface{}, len(t))
			copy(c, t)
			out[k] = c
		case bson.M:
			out[k] = clone(t)
		default:
			out[k] = v
		}
	}
	return out
}
