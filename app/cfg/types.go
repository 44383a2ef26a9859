package cfg

type Cfg struct {
	// Serving configuration
	Port string

	// Pipeline configuration
	RefreshInterval   int
	FetchTimeout      int
	SourcesFile       string
	NewsAPIKey        string
	DedupeServed      bool
	SentRetentionDays int

	// Database configuration
	DBPath string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
