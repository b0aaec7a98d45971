package redact

import (
	"gopkg.in/mgo.v2/bson"
)

// Entity selects a deny-list.
type Entity int

const (
	User Entity = iota
	Question
	Post
	Comment
)

func (e Entity) String() string {
	switch e {
	case User:
		return "user"
	case Question:
		return "question"
	case Post:
		return "post"
	case Comment:
		return "comment"
	}
	return "unknown"
}

// Fields never leaving the board, per entity. Every join that embeds one of
// these entities goes through this table.
var policy = map[Entity][]string{
	User: {
		"password",
		"confirm_password",
		"is_verified",
		"verification_token",
		"verification_token_expires",
		"otp",
		"settings",
		"password_changed_at",
		"password_reset_token",
		"password_reset_expires",
		"password_verified",
		"password_verified_expires",
		"forgot_first_time",
		"forgot_max_time",
		"refresh_token",
		"is_login_security",
		"additional_emails",
		"preferences",
		"language",
		"followers",
		"following",
		"posts",
		"saved_posts",
		"likes",
		"bookmarks",
		"notifications",
		"updated_at",
		"__v",
	},
	Question: {
		"answers",
		"is_public",
		"downvotes",
		"created_at",
		"updated_at",
		"__v",
	},
	Post: {
		"upvotes",
		"downvotes",
		"search_text",
		"is_published",
		"__v",
	},
	Comment: {
		"path_key",
		"upvotes",
		"downvotes",
		"updated_at",
		"__v",
	},
}

var denied = func() map[Entity]map[string]struct{} {
	m := make(map[Entity]map[string]struct{}, len(policy))
	for entity, fields := range policy {
		set := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			set[f] = struct{}{}
		}
		m[entity] = set
	}
	return m
}()

// Denied lists the fields stripped from entity.
func Denied(entity Entity) []string {
	list := make([]string, len(policy[entity]))
	copy(list, policy[entity])
	return list
}

// Redact returns a copy of doc without the entity's denied fields. A nil
// document redacts to an empty one.
func Redact(doc bson.M, entity Entity) bson.M {
	out := make(bson.M, len(doc))
	deny := denied[entity]
	for k, v := range doc {
		if _, hidden := deny[k]; hidden {
			continue
		}
		out[k] = v
	}
	return out
}

// Embedded redacts the sub-document stored under key, when present.
func Embedded(doc bson.M, key string, entity Entity) {
	switch sub := doc[key].(type) {
	case bson.M:
		doc[key] = Redact(sub, entity)
	case map[string]interface{}:
		doc[key] = Redact(bson.M(sub), entity)
	}
}
