package config

// Quorum config params struct.
type Quorum struct {
	Environment string
	Log         quorumLog
	Mongo       quorumMongo
	Cache       quorumCache
	Security    quorumSecurity
	Sentry      quorumSentry
	HTTP        quorumHTTP
	Board       Board
}

type quorumLog struct {
	Level string
}

type quorumMongo struct {
	URL  string
	Name string
}

type quorumCache struct {
	// Empty address disables the shared path sequencer.
	Redis string
}

type quorumSecurity struct {
	Secret string
}

type quorumSentry struct {
	DSN string
}

type quorumHTTP struct {
	Bind string
}

// Board shapes feeds, threads and search windows.
type Board struct {
	PageSize     int
	DiscoverSize int
	DiscoverPool int
	ThreadWidth  int
	ThreadDepth  int
	SearchLimit  int
}

func defaults() Quorum {
	return Quorum{
		Environment: "development",
		Log:         quorumLog{Level: "INFO"},
		Mongo:       quorumMongo{URL: "mongodb://localhost:27017", Name: "quorum"},
		HTTP:        quorumHTTP{Bind: ":3200"},
		Board: Board{
			PageSize:     10,
			DiscoverSize: 7,
			DiscoverPool: 50,
			ThreadWidth:  2,
			ThreadDepth:  2,
			SearchLimit:  50,
		},
	}
}

// DefaultBoard is the board shape used when nothing is configured.
func DefaultBoard() Board {
	return defaults().Board
}
