package domain

import "strings"

// CategoryKeywords holds the keyword table driving option classification.
// Matching is case-insensitive substring matching, so shorter stems like
// "ship" also cover "shipping" and "expedited shipping".
type CategoryKeywords struct {
	Pickup   []string `yaml:"pickup" json:"pickup"`
	Shipping []string `yaml:"shipping" json:"shipping"`
}

// DefaultKeywords returns the built-in keyword table
func DefaultKeywords() CategoryKeywords {
	return CategoryKeywords{
		Pickup: []string{
			"pickup",
			"pick-up",
			"pick_up",
			"pick up",
			"store",
			"local",
		},
		Shipping: []string{
			"ship",
			"shipping",
			"deliver",
			"standard",
			"express",
			"economy",
			"priority",
		},
	}
}

// Classifier assigns delivery options to a category based on keyword
// matching over the option's handle, title, code and description.
type Classifier struct {
	pickup   []string
	shipping []string
}

// NewClassifier creates a Classifier with the given keyword table.
// Keywords are lowercased once at construction.
func NewClassifier(keywords CategoryKeywords) *Classifier {
	return &Classifier{
		pickup:   lowerAll(keywords.Pickup),
		shipping: lowerAll(keywords.Shipping),
	}
}

// NewDefaultClassifier creates a Classifier with the built-in keyword table
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultKeywords())
}

// Classify returns the category for a delivery option. Pickup keywords take
// precedence over shipping keywords, and anything that matches neither list
// falls back to shipping. Every option gets exactly one category.
// Each text field is tested on its own so a multi-word keyword never
// matches across field boundaries.
func (c *Classifier) Classify(option DeliveryOption) OptionCategory {
	fields := [4]string{
		strings.ToLower(option.Handle),
		strings.ToLower(option.Title),
		strings.ToLower(option.Code),
		strings.ToLower(option.Description),
	}

	if matchesAny(fields, c.pickup) {
		return CategoryPickup
	}
	if matchesAny(fields, c.shipping) {
		return CategoryShipping
	}

	return CategoryShipping
}

func matchesAny(fields [4]string, keywords []string) bool {
	for _, kw := range keywords {
		for _, field := range fields {
			if field != "" && strings.Contains(field, kw) {
				return true
			}
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
