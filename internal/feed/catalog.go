package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadNewsCatalog reads an RSS feed catalog from a YAML file:
//
//	feeds:
//	  - name: BBC World
//	    url: https://feeds.bbci.co.uk/news/world/rss.xml
//
// Every entry must carry both a name and a URL.
func LoadNewsCatalog(path string) ([]NewsFeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed catalog: %w", err)
	}

	var doc struct {
		Feeds []NewsFeed `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse feed catalog %s: %w", path, err)
	}
	if len(doc.Feeds) == 0 {
		return nil, fmt.Errorf("feed catalog %s has no feeds", path)
	}
	for i, nf := range doc.Feeds {
		if nf.Name == "" || nf.URL == "" {
			return nil, fmt.Errorf("feed catalog %s: entry %d is missing a name or url", path, i)
		}
	}
	return doc.Feeds, nil
}
