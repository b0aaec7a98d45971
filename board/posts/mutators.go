package posts

import (
	"context"
	"strings"
	"time"

	"github.com/kennygrant/sanitize"
	"github.com/tryanzu/quorum/board/questions"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// Create stores a post, or an answer when the form names a question. Drafts
// stay off the question until published.
func Create(ctx context.Context, d deps, owner bson.ObjectId, form Form, publish bool) (post Post, err error) {
	if !owner.Valid() {
		return post, exceptions.Invalid("post owner is required")
	}
	if err = common.Validate(form); err != nil {
		return post, err
	}

	now := time.Now()
	post = Post{
		ID:          bson.NewObjectId(),
		Content:     form.Content,
		SearchText:  strings.TrimSpace(form.SearchText),
		CreatedBy:   owner,
		ContentType: POST,
		Upvotes:     []bson.ObjectId{},
		Downvotes:   []bson.ObjectId{},
		Images:      form.Images,
		IsPublished: publish,
		Created:     now,
		Updated:     now,
	}
	if post.SearchText == "" {
		post.SearchText = strings.TrimSpace(sanitize.HTML(form.Content))
	}
	if post.Images == nil {
		post.Images = []string{}
	}

	if form.QuestionID != "" {
		id, ok := common.ValidID(form.QuestionID)
		if !ok {
			return Post{}, exceptions.Invalid("invalid question id")
		}
		if _, err = questions.FindId(ctx, d, id); err != nil {
			return Post{}, err
		}
		answered, err := HasAnswered(ctx, d, id, owner)
		if err != nil {
			return Post{}, err
		}
		if answered {
			return Post{}, exceptions.Conflicting("you have already answered this question")
		}
		post.QuestionID = id
		post.ContentType = ANSWER
	}

	err = d.Store().Insert(ctx, store.Posts, post)
	if err == store.ErrDuplicate {
		return Post{}, exceptions.Conflicting("you have already answered this question")
	}
	if err != nil {
		return Post{}, exceptions.Wrap(err, "could not create post")
	}
	if err = d.Store().Update(ctx, store.Users, owner, store.Change{AddToSet: bson.M{"posts": post.ID}}); err != nil && err != store.ErrNotFound {
		return post, exceptions.Wrap(err, "could not link post to its author")
	}
	if publish && post.IsAnswer() {
		if err = questions.Attach(ctx, d, post.QuestionID, post.ID); err != nil {
			return post, err
		}
	}
	log.Infof("%s %s created by %s (published: %v)", post.ContentType, post.ID.Hex(), owner.Hex(), publish)
	return post, nil
}

// Publish turns an owned draft into a published post or answer.
func Publish(ctx context.Context, d deps, id, owner bson.ObjectId) (Post, error) {
	post, err := FindId(ctx, d, id)
	if err != nil {
		return post, err
	}
	if post.CreatedBy != owner {
		return post, exceptions.Conflicting("you are not allowed to publish this %s", post.ContentType)
	}
	if post.IsDeleted {
		return post, exceptions.Missing("%s not found", post.ContentType)
	}
	if post.IsPublished {
		return post, nil
	}
	if post.IsAnswer() {
		answered, err := HasAnswered(ctx, d, post.QuestionID, owner)
		if err != nil {
			return post, err
		}
		if answered {
			return post, exceptions.Conflicting("you have already answered this question")
		}
	}
	err = d.Store().Update(ctx, store.Posts, id, store.Change{Set: bson.M{"is_published": true, "updated_at": time.Now()}})
	if err == store.ErrDuplicate {
		return post, exceptions.Conflicting("you have already answered this question")
	}
	if err != nil {
		return post, exceptions.Wrap(err, "could not publish post")
	}
	post.IsPublished = true
	if post.IsAnswer() {
		if err = questions.Attach(ctx, d, post.QuestionID, post.ID); err != nil {
			return post, err
		}
	}
	return post, nil
}

// Delete soft deletes an owned post and detaches answers from their question.
func Delete(ctx context.Context, d deps, id, owner bson.ObjectId) (Post, error) {
	post, err := FindId(ctx, d, id)
	if err != nil {
		return post, err
	}
	if post.CreatedBy != owner {
		return post, exceptions.Conflicting("you are not allowed to delete this %s", post.ContentType)
	}
	if post.IsDeleted {
		return post, nil
	}
	if post.QuestionID.Valid() {
		if err = questions.Detach(ctx, d, post.QuestionID, post.ID); err != nil {
			return post, err
		}
	}
	now := time.Now()
	err = d.Store().Update(ctx, store.Posts, id, store.Change{Set: bson.M{"is_deleted": true, "deleted_at": now}})
	if err != nil {
		return post, exceptions.Wrap(err, "could not delete post")
	}
	post.IsDeleted = true
	post.Deleted = &now
	log.Infof("%s %s deleted by its owner", post.ContentType, id.Hex())
	return post, nil
}
