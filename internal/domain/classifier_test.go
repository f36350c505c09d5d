package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassifierCategories tests keyword classification across option fields
func TestClassifierCategories(t *testing.T) {
	classifier := NewDefaultClassifier()

	tests := []struct {
		name     string
		option   DeliveryOption
		expected OptionCategory
	}{
		{
			name:     "Pickup keyword in handle",
			option:   DeliveryOption{Handle: "store-pickup-main"},
			expected: CategoryPickup,
		},
		{
			name:     "Hyphenated pickup keyword in title",
			option:   DeliveryOption{Handle: "opt-1", Title: "Pick-up at counter"},
			expected: CategoryPickup,
		},
		{
			name:     "Underscored pickup keyword in code",
			option:   DeliveryOption{Handle: "opt-2", Code: "PICK_UP_01"},
			expected: CategoryPickup,
		},
		{
			name:     "Spaced pickup keyword in description",
			option:   DeliveryOption{Handle: "opt-3", Description: "Pick up your order any time"},
			expected: CategoryPickup,
		},
		{
			name:     "Local keyword",
			option:   DeliveryOption{Handle: "local-collect"},
			expected: CategoryPickup,
		},
		{
			name:     "Spaced keyword does not span fields",
			option:   DeliveryOption{Handle: "quick-pick", Title: "up-front courier"},
			expected: CategoryShipping,
		},
		{
			name:     "Spaced keyword does not bridge handle and title",
			option:   DeliveryOption{Handle: "counter-pick", Title: "Up the street"},
			expected: CategoryShipping,
		},
		{
			name:     "Shipping keyword in handle",
			option:   DeliveryOption{Handle: "standard-shipping"},
			expected: CategoryShipping,
		},
		{
			name:     "Express keyword",
			option:   DeliveryOption{Handle: "opt-4", Title: "Express"},
			expected: CategoryShipping,
		},
		{
			name:     "Economy keyword",
			option:   DeliveryOption{Handle: "opt-5", Title: "Economy"},
			expected: CategoryShipping,
		},
		{
			name:     "Deliver stem matches delivery",
			option:   DeliveryOption{Handle: "opt-6", Title: "Home Delivery"},
			expected: CategoryShipping,
		},
		{
			name:     "Ship stem matches shipping",
			option:   DeliveryOption{Handle: "opt-7", Title: "We ship worldwide"},
			expected: CategoryShipping,
		},
		{
			name:     "Mixed case matching",
			option:   DeliveryOption{Handle: "opt-8", Title: "STORE PICKUP"},
			expected: CategoryPickup,
		},
		{
			name:     "No keyword falls back to shipping",
			option:   DeliveryOption{Handle: "opt-9", Title: "Drone drop", Code: "DRONE"},
			expected: CategoryShipping,
		},
		{
			name:     "Empty option falls back to shipping",
			option:   DeliveryOption{},
			expected: CategoryShipping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.option))
		})
	}
}

// TestClassifierPickupPrecedence verifies that pickup keywords win when an
// option matches both lists
func TestClassifierPickupPrecedence(t *testing.T) {
	classifier := NewDefaultClassifier()

	tests := []struct {
		name   string
		option DeliveryOption
	}{
		{
			name:   "Ship to Store",
			option: DeliveryOption{Handle: "ship-to-store", Title: "Ship to Store"},
		},
		{
			name:   "Local express counter",
			option: DeliveryOption{Handle: "opt-1", Title: "Local express counter"},
		},
		{
			name:   "Standard pickup",
			option: DeliveryOption{Handle: "opt-2", Title: "Standard pickup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, CategoryPickup, classifier.Classify(tt.option))
		})
	}
}

// TestClassifierCustomKeywords tests classification with an overridden table
func TestClassifierCustomKeywords(t *testing.T) {
	classifier := NewClassifier(CategoryKeywords{
		Pickup:   []string{"abholung"},
		Shipping: []string{"versand"},
	})

	assert.Equal(t, CategoryPickup, classifier.Classify(DeliveryOption{Title: "Abholung im Laden"}))
	assert.Equal(t, CategoryShipping, classifier.Classify(DeliveryOption{Title: "Versand"}))

	// Default-list keywords no longer apply, so "pickup" falls back
	assert.Equal(t, CategoryShipping, classifier.Classify(DeliveryOption{Title: "Store Pickup"}))
}

// TestClassifierBlankKeywordsIgnored verifies blank entries are dropped at
// construction instead of matching everything
func TestClassifierBlankKeywordsIgnored(t *testing.T) {
	classifier := NewClassifier(CategoryKeywords{
		Pickup:   []string{"", "  ", "pickup"},
		Shipping: []string{"ship"},
	})

	assert.Equal(t, CategoryShipping, classifier.Classify(DeliveryOption{Title: "Standard Shipping"}))
	assert.Equal(t, CategoryPickup, classifier.Classify(DeliveryOption{Title: "Curbside Pickup"}))
}

func BenchmarkClassify(b *testing.B) {
	classifier := NewDefaultClassifier()
	option := DeliveryOption{
		Handle:      "expedited-express",
		Title:       "Expedited Express",
		Code:        "EXP-02",
		Description: "Arrives in 1-2 business days",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		classifier.Classify(option)
	}
}
