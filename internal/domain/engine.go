package domain

// Observer receives classification callbacks during a decision.
// Implementations hook in logging and metrics; a nil observer is valid.
type Observer interface {
	OptionClassified(option DeliveryOption, category OptionCategory, hidden bool)
	GroupEmptied(groupID string, optionCount int)
}

// Decision is the outcome of evaluating delivery groups against a
// fulfillment preference. Operations is never nil.
type Decision struct {
	Preference    FulfillmentPreference
	Operations    []HideOperation
	GroupCount    int
	OptionCount   int
	EmptiedGroups []string
}

// HiddenCount returns the number of hide operations in the decision
func (d Decision) HiddenCount() int {
	return len(d.Operations)
}

// Engine decides which delivery options to hide for a given preference
type Engine struct {
	classifier *Classifier
	observer   Observer
}

// NewEngine creates an Engine. observer may be nil.
func NewEngine(classifier *Classifier, observer Observer) *Engine {
	return &Engine{classifier: classifier, observer: observer}
}

// Decide evaluates all delivery groups and returns hide operations for the
// options that conflict with the preference. An unset preference hides
// nothing and skips classification entirely. Options are visited in
// encounter order: groups in input order, options in group order.
func (e *Engine) Decide(preference FulfillmentPreference, groups []DeliveryGroup) Decision {
	decision := Decision{
		Preference: preference,
		Operations: make([]HideOperation, 0),
		GroupCount: len(groups),
	}

	if !preference.IsSet() {
		return decision
	}

	keep := preference.Category()

	for _, group := range groups {
		decision.OptionCount += len(group.Options)
		hiddenInGroup := 0

		for _, option := range group.Options {
			category := e.classifier.Classify(option)
			hidden := category != keep

			if e.observer != nil {
				e.observer.OptionClassified(option, category, hidden)
			}

			if hidden {
				decision.Operations = append(decision.Operations, HideOperation{Handle: option.Handle})
				hiddenInGroup++
			}
		}

		if len(group.Options) > 0 && hiddenInGroup == len(group.Options) {
			decision.EmptiedGroups = append(decision.EmptiedGroups, group.ID)
			if e.observer != nil {
				e.observer.GroupEmptied(group.ID, len(group.Options))
			}
		}
	}

	return decision
}
