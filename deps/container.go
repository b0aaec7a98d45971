package deps

// Contains bootstraped dependencies.
var Container Deps

// An ignitor takes a Container and injects bootstraped dependencies.
type Ignitor func(Deps) (Deps, error)

// Bootstrap runs the ignitors in order and stops at the first failure.
func Bootstrap(ignitors ...Ignitor) (Deps, error) {
	if len(ignitors) == 0 {
		ignitors = []Ignitor{
			IgniteLogger,
			IgniteConfig,
			IgniteErrors,
			IgniteMongoDB,
			IgniteCache,
		}
	}
	container := Deps{}
	for _, fn := range ignitors {
		var err error
		if container, err = fn(container); err != nil {
			return container, err
		}
	}
	Container = container
	return container, nil
}
