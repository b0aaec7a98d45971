package deps

import (
	"github.com/getsentry/raven-go"
)

// IgniteErrors prepares the sentry client. An empty DSN yields a client that
// drops every packet.
func IgniteErrors(container Deps) (Deps, error) {
	conf := container.Config().Copy()
	client, err := raven.NewWithTags(conf.Sentry.DSN, map[string]string{
		"environment": conf.Environment,
	})
	if err != nil {
		return container, err
	}
	container.ErrorsProvider = client
	return container, nil
}
