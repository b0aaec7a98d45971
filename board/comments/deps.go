package comments

import (
	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/config"
)

type deps interface {
	Store() store.Repository
	// Sequencer may be nil, paths are then allocated from the repository alone.
	Sequencer() store.Sequencer
	Board() config.Board
}

var log = logging.MustGetLogger("comments")
