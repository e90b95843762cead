// Package taxonomy holds the canonical keyword tables shared by the
// relevance gate and the query analyzer. Keeping one copy here is what
// prevents the two classifiers from drifting apart.
package taxonomy

import "strings"

// Topic categories with their detection keywords. A query may match any
// number of categories; matching is independent per category.
var categories = map[string][]string{
	"breathing":     {"breath", "bipap", "ventilator", "oxygen", "spo2", "respiratory", "cpap"},
	"feeding":       {"peg", "ryles", "feed", "swallow", "nutrition", "tube", "eating"},
	"secretions":    {"saliva", "secretion", "mucus", "suction", "phlegm", "foamy", "drooling"},
	"tracheostomy":  {"trach", "cannula", "stoma", "cuff", "tracheostomy"},
	"equipment":     {"machine", "device", "equipment", "purchase", "buy", "rent"},
	"medication":    {"medicine", "drug", "dose", "prescription", "medication", "tablet"},
	"caregiving":    {"caregiver", "care", "routine", "daily", "schedule", "help"},
	"mobility":      {"walk", "wheelchair", "movement", "physiotherapy", "exercise"},
	"communication": {"speak", "communication", "aac", "voice", "talk"},
	"emotional":     {"stress", "burnout", "depression", "support", "cope", "mental"},
}

// Extra keyword groups the gate scores beyond the topic categories.
var gateExtras = map[string][]string{
	"disease": {"als", "mnd", "motor neuron", "neurologist", "riluzole", "bulbar"},
	"vitals":  {"pulse", "blood pressure", "heart rate", "oxygen level", "saturation"},
	"locale":  {"india", "indian", "delhi", "mumbai", "bangalore", "₹", "rupees"},
}

// EmergencyKeywords trigger the emergency flag and fast path.
var EmergencyKeywords = []string{
	"emergency", "urgent", "immediate", "cannot breathe", "choking",
	"spo2 drop", "crisis", "gasping", "blue lips", "unconscious",
	"spo2", "oxygen dropping", "not breathing", "can't breathe",
}

// IndiaKeywords trigger locale-priority boosting.
var IndiaKeywords = []string{
	"india", "indian", "delhi", "mumbai", "bangalore", "₹", "rupees",
}

// CostKeywords trigger the cost-interest flag.
var CostKeywords = []string{
	"cost", "price", "expensive", "affordable", "₹", "rupees",
	"budget", "cheap", "how much", "lakh", "thousand",
}

// ComparisonKeywords trigger the comparison flag. Short tokens ("vs", "or")
// are matched as whole words by Matches so they never fire inside "doctor"
// or "conversation".
var ComparisonKeywords = []string{
	"vs", "versus", "compare", "difference between", "which is better",
	"or", "better option", "choose between",
}

// TechnicalKeywords trigger the technical-detail flag.
var TechnicalKeywords = []string{
	"how to", "procedure", "steps", "protocol", "settings",
	"dosage", "frequency", "technical", "setup",
}

// QuestionPatterns are generic caregiver question phrasings. Any single
// match contributes one flat partial score in the gate.
var QuestionPatterns = []string{
	"how to manage", "how do i", "what should i", "which machine",
	"what machine", "best way to", "what to do when", "is it normal",
}

// Misspellings maps common misspelled tokens to their canonical form.
// The gate treats a corrected token as a weighted partial match.
var Misspellings = map[string]string{
	"breething":   "breathing",
	"breathin":    "breathing",
	"oxigen":      "oxygen",
	"oxygin":      "oxygen",
	"bypap":       "bipap",
	"bipep":       "bipap",
	"ventilater":  "ventilator",
	"trakeostomy": "tracheostomy",
	"swalow":      "swallow",
	"secresion":   "secretion",
	"medicin":     "medicine",
	"weelchair":   "wheelchair",
}

// Categories returns the topic category table used by the analyzer.
func Categories() map[string][]string { return categories }

// GateCategories returns the wider category table the relevance gate scores:
// the topic categories plus disease, vitals, and locale keyword groups.
func GateCategories() map[string][]string {
	merged := make(map[string][]string, len(categories)+len(gateExtras))
	for name, kws := range categories {
		merged[name] = kws
	}
	for name, kws := range gateExtras {
		merged[name] = kws
	}
	return merged
}

// Matches reports whether the lowercased query contains the term.
// Alphabetic terms of three characters or fewer must appear as a whole
// word ("or" must not fire inside "doctor"); everything else, including
// the currency symbol, matches as a substring.
func Matches(query, term string) bool {
	if term == "" {
		return false
	}
	if len([]rune(term)) > 3 || !isAlpha(term) {
		return strings.Contains(query, term)
	}
	if !strings.Contains(query, term) {
		return false
	}
	for _, word := range strings.FieldsFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if word == term {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(s) > 0
}
