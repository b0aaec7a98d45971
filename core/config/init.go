package config

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("config")

var (
	// C stands for config
	C *Config
)

// Bootstrap loads the env file pointed by ENV_FILE (./env.yml by default)
// and starts watching it.
func Bootstrap() error {
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = "./env.yml"
	}
	c, err := Load(file)
	if err != nil {
		return err
	}
	C = c
	go C.WatchFile(file)
	return nil
}

type Config struct {
	Reload  chan bool
	mu      sync.RWMutex
	raw     *config.Config
	current Quorum
}

// Load parses a yaml or json env file. A missing file falls back to defaults
// plus environment overrides.
func Load(file string) (*Config, error) {
	c := &Config{Reload: make(chan bool, 1)}
	if err := c.Merge(file); err != nil {
		return nil, err
	}
	return c, nil
}

// FromRaw builds a config out of an already parsed tree.
func FromRaw(raw *config.Config) *Config {
	c := &Config{Reload: make(chan bool, 1)}
	c.apply(raw)
	return c
}

func (c *Config) Copy() Quorum {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Config) Raw() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.raw
}

func (c *Config) Merge(file string) error {
	raw, err := parse(file)
	if err != nil {
		return err
	}
	c.apply(raw)

	// Reload signal if anyone is listening...
	select {
	case c.Reload <- true:
	default:
	}
	return nil
}

func (c *Config) apply(raw *config.Config) {
	q := defaults()
	q.Environment = raw.UString("environment", q.Environment)
	q.Log.Level = raw.UString("log.level", q.Log.Level)
	q.Mongo.URL = raw.UString("mongo.url", q.Mongo.URL)
	q.Mongo.Name = raw.UString("mongo.name", q.Mongo.Name)
	q.Cache.Redis = raw.UString("cache.redis", q.Cache.Redis)
	q.Security.Secret = raw.UString("application.secret", q.Security.Secret)
	q.Sentry.DSN = raw.UString("sentry.dns", q.Sentry.DSN)
	q.HTTP.Bind = raw.UString("http.bind", q.HTTP.Bind)
	q.Board.PageSize = raw.UInt("board.page_size", q.Board.PageSize)
	q.Board.DiscoverSize = raw.UInt("board.discover.size", q.Board.DiscoverSize)
	q.Board.DiscoverPool = raw.UInt("board.discover.pool", q.Board.DiscoverPool)
	q.Board.ThreadWidth = raw.UInt("board.thread.width", q.Board.ThreadWidth)
	q.Board.ThreadDepth = raw.UInt("board.thread.depth", q.Board.ThreadDepth)
	q.Board.SearchLimit = raw.UInt("board.search.limit", q.Board.SearchLimit)

	c.mu.Lock()
	c.raw = raw
	c.current = q
	c.mu.Unlock()
}

func parse(file string) (*config.Config, error) {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		log.Warningf("config file %s not found, using defaults", file)
		raw, err := config.ParseYaml("{}")
		if err != nil {
			return nil, err
		}
		return raw.Env(), nil
	}
	var (
		raw *config.Config
		err error
	)
	if isJSON(file) {
		raw, err = config.ParseJsonFile(file)
	} else {
		raw, err = config.ParseYamlFile(file)
	}
	if err != nil {
		return nil, err
	}
	return raw.Env(), nil
}

func isJSON(file string) bool {
	return len(file) > 5 && file[len(file)-5:] == ".json"
}

func (c *Config) WatchFile(file string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error(err)
		return
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Write == fsnotify.Write {
					log.Infof("modified file: %s", event.Name)
					if err := c.Merge(event.Name); err != nil {
						log.Error(err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error(err)
			}
		}
	}()
	if err := watcher.Add(file); err != nil {
		log.Warning(err)
	}
}
