package deps

import (
	"github.com/getsentry/raven-go"
	"github.com/go-redis/redis/v8"
	"github.com/op/go-logging"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/core/config"
	"gopkg.in/mgo.v2"
)

type Deps struct {
	ConfigProvider          *config.Config
	DatabaseSessionProvider *mgo.Session
	DatabaseProvider        *mgo.Database
	RepositoryProvider      store.Repository
	LoggerProvider          *logging.Logger
	CacheProvider           *redis.Client
	SequencerProvider       store.Sequencer
	ErrorsProvider          *raven.Client
}

func (d Deps) Config() *config.Config {
	return d.ConfigProvider
}

// Board is the live board shape, re-read on every call so config reloads
// apply to the next request.
func (d Deps) Board() config.Board {
	if d.ConfigProvider == nil {
		return config.DefaultBoard()
	}
	return d.ConfigProvider.Copy().Board
}

func (d Deps) Log() *logging.Logger {
	return d.LoggerProvider
}

func (d Deps) Mgo() *mgo.Database {
	return d.DatabaseProvider
}

func (d Deps) MgoSession() *mgo.Session {
	return d.DatabaseSessionProvider
}

func (d Deps) Store() store.Repository {
	return d.RepositoryProvider
}

func (d Deps) Cache() *redis.Client {
	return d.CacheProvider
}

// Sequencer is nil unless a redis address is configured.
func (d Deps) Sequencer() store.Sequencer {
	return d.SequencerProvider
}

func (d Deps) Errors() *raven.Client {
	return d.ErrorsProvider
}
