package conversation

import "strings"

// Intent classifies a normalized inbound utterance before the controller
// acts on it.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentAffirm
	IntentCancel
	IntentTimeEntry
	IntentHelp
)

var (
	affirmTokens = []string{"yes", "y", "confirm", "ok"}
	cancelTokens = []string{"no", "n", "cancel"}
	helpTokens   = []string{"help", "status"}

	// Keyword rules use substring containment, not word boundaries: "today"
	// reaches the time branch through "to". The grammar accepts that
	// permissiveness; the parser sorts out what it can and cannot read.
	timeKeywords = []string{"worked", "work", "till", "until", "to", ":", "normal", "day", "saturday", "sunday"}
)

type classifierRule struct {
	matches func(string) bool
	intent  Intent
}

// Classifier evaluates an ordered rule list, first match wins. Confirmation
// tokens are checked before time keywords so a bare "no" never reads as a
// time report.
type Classifier struct {
	rules []classifierRule
}

// NewClassifier builds the default grammar.
func NewClassifier() *Classifier {
	return &Classifier{rules: []classifierRule{
		{matchesAny(affirmTokens), IntentAffirm},
		{matchesAny(cancelTokens), IntentCancel},
		{containsAny(timeKeywords), IntentTimeEntry},
		{matchesAny(helpTokens), IntentHelp},
	}}
}

// Classify returns the intent of a lower-cased, trimmed message.
func (c *Classifier) Classify(message string) Intent {
	for _, rule := range c.rules {
		if rule.matches(message) {
			return rule.intent
		}
	}
	return IntentUnknown
}

func matchesAny(tokens []string) func(string) bool {
	return func(message string) bool {
		for _, token := range tokens {
			if message == token {
				return true
			}
		}
		return false
	}
}

func containsAny(keywords []string) func(string) bool {
	return func(message string) bool {
		for _, keyword := range keywords {
			if strings.Contains(message, keyword) {
				return true
			}
		}
		return false
	}
}
