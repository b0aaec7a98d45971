package comments

import (
	"fmt"
	"time"

	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

type Comment struct {
	ID        bson.ObjectId   `bson:"_id,omitempty" json:"id,omitempty"`
	Content   string          `bson:"content" json:"content"`
	CreatedBy bson.ObjectId   `bson:"created_by" json:"created_by"`
	PostID    bson.ObjectId   `bson:"post_id" json:"post_id"`
	Path      Path            `bson:"path" json:"path"`
	PathKey   string          `bson:"path_key" json:"-"`
	Upvotes   []bson.ObjectId `bson:"upvotes" json:"-"`
	Downvotes []bson.ObjectId `bson:"downvotes" json:"-"`
	Created   time.Time       `bson:"created_at" json:"created_at"`
	Updated   time.Time       `bson:"updated_at" json:"updated_at"`
}

func (Comment) VotableType() store.Collection {
	return store.Comments
}

func (c Comment) VotableID() bson.ObjectId {
	return c.ID
}

// Path addresses a comment inside the reply tree of its post. Its length is
// the depth and its last element the rank among siblings.
type Path []int

func (p Path) Depth() int {
	return len(p)
}

// Parent is the path minus its last element, nil for roots.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[: len(p)-1 : len(p)-1]
}

// Child appends a rank without aliasing p.
func (p Path) Child(rank int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = rank
	return child
}

// ParsePath accepts a decoded json array of positive integers. nil means no
// parent.
func ParsePath(raw interface{}) (Path, error) {
	if raw == nil {
		return nil, nil
	}
	var list []int
	switch v := raw.(type) {
	case Path:
		list = v
	case []int:
		list = v
	case []interface{}:
		ints, ok := common.Ints(v)
		if !ok {
			return nil, exceptions.Invalid("parent path must only hold integers")
		}
		list = ints
	default:
		return nil, exceptions.Invalid("parent path must be an array but got %s", kind(raw))
	}
	for _, n := range list {
		if n < 1 {
			return nil, exceptions.Invalid("parent path must only hold positive integers")
		}
	}
	return Path(list), nil
}

func kind(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case float64, int:
		return "number"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// Form is what a user submits to comment.
type Form struct {
	Content string `json:"content" validate:"required,max=5000"`
	PostID  string `json:"post_id" validate:"required"`

	// Absent for a root comment.
	ParentPath interface{} `json:"parent_path"`
}
