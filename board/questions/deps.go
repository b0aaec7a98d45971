package questions

import (
	"github.com/tryanzu/quorum/board/store"
)

type deps interface {
	Store() store.Repository
}
