package deps

import (
	"github.com/tryanzu/quorum/board/store"
	"gopkg.in/mgo.v2"
)

func IgniteMongoDB(container Deps) (Deps, error) {
	conf := container.Config().Copy().Mongo
	session, err := mgo.Dial(conf.URL)
	if err != nil {
		log.Error(err)
		log.Info(conf.URL)
		return container, err
	}
	db := session.DB(conf.Name)
	repo := store.NewMongo(db)
	if err := repo.EnsureIndexes(); err != nil {
		log.Warningf("could not ensure indexes: %v", err)
	}

	container.DatabaseSessionProvider = session
	container.DatabaseProvider = db
	container.RepositoryProvider = repo
	return container, nil
}
