package users

import (
	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/store"
)

type deps interface {
	Store() store.Repository
}

var log = logging.MustGetLogger("users")
