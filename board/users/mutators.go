package users

import (
	"context"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

// ToggleFollow follows or unfollows target. Both sides of the relation are
// updated together: follower's following and target's followers.
func ToggleFollow(ctx context.Context, d deps, follower, target bson.ObjectId) (following bool, err error) {
	if !follower.Valid() || !target.Valid() {
		return false, exceptions.Invalid("invalid user id")
	}
	if follower == target {
		return false, exceptions.Conflicting("you cannot follow yourself")
	}
	if _, err = find(ctx, d, target); err != nil {
		return
	}
	me, err := find(ctx, d, follower)
	if err != nil {
		return
	}

	mine, theirs := store.Change{}, store.Change{}
	if common.NewIDSet(common.IDList(me, "following")...).Has(target) {
		mine.Pull = bson.M{"following": target}
		theirs.Pull = bson.M{"followers": follower}
	} else {
		mine.AddToSet = bson.M{"following": target}
		theirs.AddToSet = bson.M{"followers": follower}
		following = true
	}
	if err = d.Store().Update(ctx, store.Users, follower, mine); err != nil {
		return false, exceptions.Wrap(err, "could not update following")
	}
	if err = d.Store().Update(ctx, store.Users, target, theirs); err != nil {
		return false, exceptions.Wrap(err, "could not update followers")
	}
	log.Debugf("%s following %s: %v", follower.Hex(), target.Hex(), following)
	return following, nil
}

// ToggleBookmark adds or removes a post from the user's bookmarks.
func ToggleBookmark(ctx context.Context, d deps, user, post bson.ObjectId) (bookmarked bool, err error) {
	if !post.Valid() {
		return false, exceptions.Invalid("invalid post id")
	}
	if _, err = d.Store().FindID(ctx, store.Posts, post); err == store.ErrNotFound {
		return false, exceptions.Missing("post not found")
	} else if err != nil {
		return false, exceptions.Wrap(err, "could not load post")
	}
	me, err := find(ctx, d, user)
	if err != nil {
		return
	}
	change := store.Change{}
	if common.NewIDSet(common.IDList(me, "bookmarks")...).Has(post) {
		change.Pull = bson.M{"bookmarks": post}
	} else {
		change.AddToSet = bson.M{"bookmarks": post}
		bookmarked = true
	}
	if err = d.Store().Update(ctx, store.Users, user, change); err != nil {
		return false, exceptions.Wrap(err, "could not update bookmarks")
	}
	return bookmarked, nil
}

// UpdateCredential replaces one credential block, keeping only its filled in
// fields.
func UpdateCredential(ctx context.Context, d deps, user bson.ObjectId, c Credential) error {
	if !c.Meaningful() {
		switch c.Key() {
		case "employment":
			return exceptions.Invalid("please add a company or position")
		case "education":
			return exceptions.Invalid("please add a school or degree")
		}
		return exceptions.Invalid("please add a %s", c.Key())
	}
	value, err := common.ToDoc(c)
	if err != nil {
		return exceptions.Wrap(err, "malformed credential")
	}
	return set(ctx, d, user, bson.M{"credentials." + c.Key(): value})
}

// UpdateAbout sets the free text credentials (headline and description).
func UpdateAbout(ctx context.Context, d deps, user bson.ObjectId, profile, description string) error {
	if blank(profile, description) == 2 {
		return exceptions.Invalid("please provide a profile or description")
	}
	fields := bson.M{}
	if blank(profile) == 0 {
		fields["credentials.profile"] = profile
	}
	if blank(description) == 0 {
		fields["credentials.description"] = description
	}
	return set(ctx, d, user, fields)
}

func AddLanguage(ctx context.Context, d deps, user bson.ObjectId, name string) error {
	lang, me, err := language(ctx, d, user, name)
	if err != nil {
		return err
	}
	if hasLanguage(me, lang) {
		return exceptions.Conflicting("%s is already one of your languages", lang)
	}
	err = d.Store().Update(ctx, store.Users, user, store.Change{AddToSet: bson.M{"language.additional": lang}})
	return exceptions.Wrap(err, "could not add language")
}

func RemoveLanguage(ctx context.Context, d deps, user bson.ObjectId, name string) error {
	lang, me, err := language(ctx, d, user, name)
	if err != nil {
		return err
	}
	if !hasLanguage(me, lang) {
		return exceptions.Missing("%s is not one of your languages", lang)
	}
	if primary := common.String(common.Sub(me, "language"), "primary"); primary == lang {
		return exceptions.Conflicting("%s is your primary language", lang)
	}
	err = d.Store().Update(ctx, store.Users, user, store.Change{Pull: bson.M{"language.additional": lang}})
	return exceptions.Wrap(err, "could not remove language")
}

// SetPrimaryLanguage picks one of the user's languages as primary.
func SetPrimaryLanguage(ctx context.Context, d deps, user bson.ObjectId, name string) error {
	lang, me, err := language(ctx, d, user, name)
	if err != nil {
		return err
	}
	if !hasLanguage(me, lang) {
		return exceptions.Invalid("add %s to your languages first", lang)
	}
	return set(ctx, d, user, bson.M{"language.primary": lang})
}

func language(ctx context.Context, d deps, user bson.ObjectId, name string) (string, bson.M, error) {
	lang, ok := Language(name)
	if lang == "" {
		return "", nil, exceptions.Invalid("please provide a language")
	}
	if !ok {
		return "", nil, exceptions.Invalid("%s is not a supported language", lang)
	}
	me, err := find(ctx, d, user)
	return lang, me, err
}

func hasLanguage(user bson.M, lang string) bool {
	list, _ := common.Sub(user, "language")["additional"].([]interface{})
	for _, item := range list {
		if item == lang {
			return true
		}
	}
	return false
}

func set(ctx context.Context, d deps, user bson.ObjectId, fields bson.M) error {
	err := d.Store().Update(ctx, store.Users, user, store.Change{Set: fields})
	if err == store.ErrNotFound {
		return exceptions.Missing("user not found")
	}
	return exceptions.Wrap(err, "could not update user")
}

func find(ctx context.Context, d deps, id bson.ObjectId) (bson.M, error) {
	doc, err := d.Store().FindID(ctx, store.Users, id)
	if err == store.ErrNotFound {
		return nil, exceptions.Missing("user not found")
	}
	if err != nil {
		return nil, exceptions.Wrap(err, "could not load user")
	}
	return doc, nil
}
