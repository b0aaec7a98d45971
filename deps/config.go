package deps

import (
	"github.com/tryanzu/quorum/core/config"
)

func IgniteConfig(container Deps) (Deps, error) {
	if err := config.Bootstrap(); err != nil {
		log.Error(err)
		return container, err
	}
	container.ConfigProvider = config.C
	SetLevel(config.C.Copy().Log.Level)

	go func() {
		for range config.C.Reload {
			log.Info("config reloaded")
			SetLevel(config.C.Copy().Log.Level)
		}
	}()
	return container, nil
}
