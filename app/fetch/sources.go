package fetch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes one external RSS/Atom feed. Static configuration, never
// mutated at runtime.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Lang string `yaml:"lang"`
}

// SearchQuery describes one NewsAPI keyword query.
type SearchQuery struct {
	Query    string `yaml:"query"`
	Lang     string `yaml:"lang"`
	PageSize int    `yaml:"page_size"`
}

// SourcesConfig is the YAML sources file structure.
type SourcesConfig struct {
	Sources  []Source      `yaml:"sources"`
	Searches []SearchQuery `yaml:"searches"`
}

// DefaultSources lists the built-in Israeli and English feeds.
var DefaultSources = []Source{
	{Name: "ynet", URL: "https://www.ynet.co.il/Integration/StoryRss2.xml", Lang: "he"},
	{Name: "N12", URL: "https://www.mako.co.il/rss/31750a2610f26110VgnVCM1000005201000aRCRD.xml", Lang: "he"},
	{Name: "Walla", URL: "https://rss.walla.co.il/feed/1", Lang: "he"},
	{Name: "הארץ", URL: "https://www.haaretz.co.il/cmlink/1.1647970", Lang: "he"},
	{Name: "Times of Israel", URL: "https://www.timesofisrael.com/feed/", Lang: "en"},
	{Name: "Jerusalem Post", URL: "https://www.jpost.com/rss/rssfeedsfrontpage.aspx", Lang: "en"},
	{Name: "Reuters MidEast", URL: "https://feeds.reuters.com/Reuters/worldNews", Lang: "en"},
}

// DefaultSearches lists the built-in NewsAPI queries, used when a NewsAPI key
// is configured.
var DefaultSearches = []SearchQuery{
	{Query: "Iran Israel attack war military", Lang: "en", PageSize: 8},
	{Query: "איראן ישראל מלחמה צבא", Lang: "he", PageSize: 5},
}

// LoadSources reads a sources file, falling back to the built-in lists when
// path is empty. Missing optional fields get defaults.
func LoadSources(path string) (*SourcesConfig, error) {
	if path == "" {
		return &SourcesConfig{Sources: DefaultSources, Searches: DefaultSearches}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var config SourcesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sources YAML: %w", err)
	}

	if err := validateSources(&config); err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	for i := range config.Sources {
		if config.Sources[i].Lang == "" {
			config.Sources[i].Lang = "en"
		}
	}
	for i := range config.Searches {
		if config.Searches[i].Lang == "" {
			config.Searches[i].Lang = "en"
		}
		if config.Searches[i].PageSize == 0 {
			config.Searches[i].PageSize = 5
		}
	}

	return &config, nil
}

func validateSources(config *SourcesConfig) error {
	if len(config.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	for i, source := range config.Sources {
		if source.Name == "" {
			return fmt.Errorf("source at index %d: name is required", i)
		}
		if source.URL == "" {
			return fmt.Errorf("source at index %d: URL is required", i)
		}
	}

	for i, search := range config.Searches {
		if search.Query == "" {
			return fmt.Errorf("search at index %d: query is required", i)
		}
		if search.PageSize < 0 {
			return fmt.Errorf("search at index %d: page size must be non-negative", i)
		}
	}

	return nil
}
