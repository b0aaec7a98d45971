package deps

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("quorum")

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000}  %{pid} %{module}	%{shortfile}	▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`,
)

var leveled logging.LeveledBackend

func IgniteLogger(container Deps) (Deps, error) {
	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatter := logging.NewBackendFormatter(backend, format)
	leveled = logging.AddModuleLevel(formatter)
	leveled.SetLevel(logging.DEBUG, "")
	logging.SetBackend(leveled)
	container.LoggerProvider = log
	return container, nil
}

// SetLevel applies a level name such as INFO or DEBUG to every module.
func SetLevel(name string) {
	if leveled == nil {
		return
	}
	level, err := logging.LogLevel(name)
	if err != nil {
		log.Warningf("unknown log level %q, keeping current", name)
		return
	}
	leveled.SetLevel(level, "")
}
