package models

import "strings"

type Variant struct {
	Slug       string
	Language   string
	NativeName string
}

var (
	VariantEnglish = Variant{Slug: "english", Language: "en", NativeName: "English"}
	VariantHindi   = Variant{Slug: "hindi", Language: "hi", NativeName: "Hindi"}
	VariantMarathi = Variant{Slug: "marathi", Language: "mr", NativeName: "Marathi"}
)

var Variants = []Variant{VariantEnglish, VariantHindi, VariantMarathi}

// LookupVariant accepts either the route slug or the language tag.
func LookupVariant(raw string) (Variant, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, variant := range Variants {
		if variant.Slug == normalized || variant.Language == normalized {
			return variant, true
		}
	}
	return Variant{}, false
}

// Submission is what leaves the service: one completed record plus the variant it was filled in.
type Submission struct {
	SessionID        string
	Record           FormRecord
	Variant          Variant
	NoDisordersLabel string
}
