package search

import (
	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/config"
)

type deps interface {
	Store() store.Repository
	Board() config.Board
}

var log = logging.MustGetLogger("search")
