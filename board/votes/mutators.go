package votes

import (
	"context"
	"strings"

	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/derive"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("votes")

// Toggle casts or retracts a vote. Casting one direction retracts the other
// in the same update, so a voter never sits in both sets.
func Toggle(ctx context.Context, d deps, item Votable, voter bson.ObjectId, kind VoteType) (Status, error) {
	if !voter.Valid() {
		return "", exceptions.Invalid("voter is required")
	}
	if !item.VotableID().Valid() {
		return "", exceptions.Invalid("invalid %s id", noun(item))
	}
	if item.VotableType() == store.Questions && kind == UP {
		return "", exceptions.Invalid("questions can only be downvoted")
	}
	doc, err := d.Store().FindID(ctx, item.VotableType(), item.VotableID())
	if err == store.ErrNotFound {
		return "", exceptions.Missing("%s not found", noun(item))
	}
	if err != nil {
		return "", exceptions.Wrap(err, "could not load votable")
	}
	if derive.Owner(doc) == voter {
		return "", exceptions.Conflicting("you cannot vote on your own %s", noun(item))
	}

	var (
		change store.Change
		status Status
	)
	if common.NewIDSet(common.IDList(doc, kind.field())...).Has(voter) {
		change.Pull = bson.M{kind.field(): voter}
		status = removed(kind)
	} else {
		change.AddToSet = bson.M{kind.field(): voter}
		change.Pull = bson.M{kind.opposite().field(): voter}
		status = cast(kind)
	}
	err = d.Store().Update(ctx, item.VotableType(), item.VotableID(), change)
	if err != nil {
		return "", exceptions.Wrap(err, "could not toggle vote")
	}
	log.Debugf("%s %s on %s %s", voter.Hex(), status, noun(item), item.VotableID().Hex())
	return status, nil
}

// Count summarizes the vote sets of a document.
func Count(doc bson.M) Votes {
	return Votes{Up: derive.Total(doc, "upvotes"), Down: derive.Total(doc, "downvotes")}
}

func cast(kind VoteType) Status {
	if kind == UP {
		return Upvoted
	}
	return Downvoted
}

func removed(kind VoteType) Status {
	if kind == UP {
		return RemovedUpvote
	}
	return RemovedDownvote
}

func noun(item Votable) string {
	return strings.TrimSuffix(string(item.VotableType()), "s")
}
