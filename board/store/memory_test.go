package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func TestMemory_InsertAndFind(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	owner := bson.NewObjectId()
	now := time.Now()

	for i, text := range []string{"How does gin route?", "Why is mgo still around?", "How to ship Go?"} {
		err := repo.Insert(ctx, Questions, bson.M{
			"_id":        bson.NewObjectId(),
			"question":   text,
			"created_by": owner,
			"is_public":  i != 1,
			"created_at": now.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	list, err := repo.Find(ctx, Questions, Criteria{Public: true}, Page{Sort: -1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "How to ship Go?", list[0]["question"])

	n, err := repo.Count(ctx, Questions, Criteria{CreatedBy: owner})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	err = repo.Insert(ctx, Questions, bson.M{"question": "How to ship Go?"})
	assert.Equal(t, ErrDuplicate, err)
}

func TestMemory_TextAndPattern(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, Questions, bson.M{"question": "However you like it"}))

	list, err := repo.Find(ctx, Questions, Criteria{Text: "how"}, Page{})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.Find(ctx, Questions, Criteria{Pattern: "HOW"}, Page{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.Find(ctx, Questions, Criteria{Text: "you are"}, Page{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemory_CommentPaths(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	post := bson.NewObjectId()

	// Paths sharing elements are still distinct keys.
	for _, path := range [][]int{{1}, {2}, {1, 1}, {2, 1}, {1, 3}, {1, 3, 1}} {
		require.NoError(t, repo.Insert(ctx, Comments, bson.M{"post_id": post, "path": path, "path_key": PathKey(path)}))
	}

	last, ok, err := repo.LastSibling(ctx, post, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, last)

	last, ok, err = repo.LastSibling(ctx, post, []int{1})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, last)

	_, ok, err = repo.LastSibling(ctx, post, []int{2})
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Insert(ctx, Comments, bson.M{"post_id": post, "path": []int{1, 3}, "path_key": "1.3"})
	assert.Equal(t, ErrDuplicate, err)

	other := bson.NewObjectId()
	require.NoError(t, repo.Insert(ctx, Comments, bson.M{"post_id": other, "path": []int{1, 3}, "path_key": "1.3"}))

	counts, err := repo.CountComments(ctx, []bson.ObjectId{post, bson.NewObjectId()})
	require.NoError(t, err)
	assert.Equal(t, map[bson.ObjectId]int{post: 6}, counts)
}

func TestPathKey(t *testing.T) {
	assert.Equal(t, "", PathKey(nil))
	assert.Equal(t, "1", PathKey([]int{1}))
	assert.Equal(t, "1.12.3", PathKey([]int{1, 12, 3}))
	assert.NotEqual(t, PathKey([]int{1, 12}), PathKey([]int{11, 2}))
}

func TestMongoIndexes(t *testing.T) {
	var unique []string
	for _, index := range indexes()[Comments] {
		if index.Unique {
			unique = index.Key
		}
	}
	assert.Equal(t, []string{"post_id", "path_key"}, unique)

	cmd := liveAnswerIndex().Map()
	assert.Equal(t, "posts", cmd["createIndexes"])
	list, ok := cmd["indexes"].([]bson.M)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0]["unique"])
	assert.Equal(t, bson.M{
		"content_type": "answer",
		"is_published": true,
		"is_deleted":   false,
	}, list[0]["partialFilterExpression"])
}

func TestMemory_QuestionIDs(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	a, b := bson.NewObjectId(), bson.NewObjectId()
	for _, q := range []bson.ObjectId{a, b, bson.NewObjectId()} {
		require.NoError(t, repo.Insert(ctx, Posts, bson.M{"question_id": q, "content_type": "answer"}))
	}

	list, err := repo.Find(ctx, Posts, Criteria{QuestionIDs: []bson.ObjectId{a, b}}, Page{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemory_UpdateToggle(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	id := bson.NewObjectId()
	voter := bson.NewObjectId()
	require.NoError(t, repo.Insert(ctx, Posts, bson.M{"_id": id, "downvotes": []bson.ObjectId{voter}}))

	err := repo.Update(ctx, Posts, id, Change{
		AddToSet: bson.M{"upvotes": voter},
		Pull:     bson.M{"downvotes": voter},
	})
	require.NoError(t, err)

	up, err := repo.Contains(ctx, Posts, id, "upvotes", voter)
	require.NoError(t, err)
	down, err := repo.Contains(ctx, Posts, id, "downvotes", voter)
	require.NoError(t, err)
	assert.True(t, up)
	assert.False(t, down)

	err = repo.Update(ctx, Posts, bson.NewObjectId(), Change{Set: bson.M{"x": 1}})
	assert.Equal(t, ErrNotFound, err)
}

func TestMemory_SampleExcludesSeen(t *testing.T) {
	repo := NewMemory()
	repo.Seed(7)
	ctx := context.Background()
	var ids []bson.ObjectId
	for i := 0; i < 10; i++ {
		id := bson.NewObjectId()
		ids = append(ids, id)
		require.NoError(t, repo.Insert(ctx, Questions, bson.M{"_id": id, "question": string(rune('a' + i))}))
	}

	list, err := repo.Find(ctx, Questions, Criteria{NotIDs: ids[:5]}, Page{Sample: 10, Limit: 7})
	require.NoError(t, err)
	assert.Len(t, list, 5)
	for _, doc := range list {
		assert.NotContains(t, ids[:5], doc["_id"])
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "what-is-go?", Slugify("What is Go?"))
	assert.Equal(t, Slugify("What is Go?"), QuestionSlug("What-is-go"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"que", "es", "cafe", "2024"}, Tokenize("¿Qué es café? (2024)"))
	assert.True(t, textMatch("Cómo aprender Go", "como"))
}
