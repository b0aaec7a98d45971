package feed

import (
	"github.com/tryanzu/quorum/board/derive"
	"github.com/tryanzu/quorum/board/redact"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"gopkg.in/mgo.v2/bson"
)

// joined is everything the decoration of one batch needs besides the
// documents themselves.
type joined struct {
	owners    common.DocsMap
	questions common.DocsMap
	comments  map[bson.ObjectId]int
	answered  common.IDSet
}

func (j joined) owner(doc bson.M) bson.M {
	return j.owners[derive.Owner(doc)]
}

// withOwner embeds the redacted author. An author that no longer exists is
// an empty object.
func withOwner(out, owner bson.M) {
	if owner == nil {
		out["created_by"] = bson.M{}
		return
	}
	out["created_by"] = owner
	redact.Embedded(out, "created_by", redact.User)
}

func question(doc bson.M, j joined, v viewer.Viewer) bson.M {
	id := common.ObjectID(doc, "_id")
	owner := j.owner(doc)
	out := derive.Apply(common.Copy(doc), owner, v, j.comments[id])
	out = redact.Redact(out, redact.Question)
	out["type"] = string(Question)
	out["is_own_question"] = derive.IsOwnContent(doc, v)
	out["total_answers"] = derive.Total(doc, "answers")
	out["is_answered"] = j.answered.Has(id)
	withOwner(out, owner)
	return out
}

// post decorates answers and standalone posts. An answer whose question is
// gone keeps its own fields but loses every question related one.
func post(doc bson.M, j joined, v viewer.Viewer) bson.M {
	id := common.ObjectID(doc, "_id")
	owner := j.owner(doc)
	out := derive.Apply(common.Copy(doc), owner, v, j.comments[id])
	out = redact.Redact(out, redact.Post)
	out["type"] = common.String(doc, "content_type")
	if out["type"] == string(Answer) {
		if q, ok := j.questions[common.ObjectID(doc, "question_id")]; ok {
			out["question"] = redact.Redact(q, redact.Question)
			out["total_answers"] = derive.Total(q, "answers")
			out["is_own_question"] = derive.IsOwnContent(q, v)
		}
	}
	withOwner(out, owner)
	return out
}
