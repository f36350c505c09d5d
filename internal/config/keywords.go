package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
)

// KeywordsFile is the on-disk shape of a keyword table override.
// Merchants with non-English option names point KEYWORDS_CONFIG at a file
// like:
//
//	classifier:
//	  pickup: ["abholung", "filiale"]
//	  shipping: ["versand", "lieferung"]
type KeywordsFile struct {
	Classifier domain.CategoryKeywords `yaml:"classifier"`
}

// LoadKeywords reads a keyword table from path. An empty path returns the
// built-in defaults. A file that omits one list keeps the default for it,
// so overrides can be partial.
func LoadKeywords(path string) (domain.CategoryKeywords, error) {
	keywords := domain.DefaultKeywords()

	if path == "" {
		return keywords, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return keywords, fmt.Errorf("failed to read keywords config %s: %w", path, err)
	}

	var file KeywordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return keywords, fmt.Errorf("failed to parse keywords config %s: %w", path, err)
	}

	if len(file.Classifier.Pickup) > 0 {
		keywords.Pickup = file.Classifier.Pickup
	}
	if len(file.Classifier.Shipping) > 0 {
		keywords.Shipping = file.Classifier.Shipping
	}

	return keywords, nil
}
