// Package constants holds shared domain-level constants.
package constants

// Table ids of the backing table-object store, one per entity type.
const (
	TableAuthor              = 21
	TableAuthorBio           = 22
	TablePublisher           = 23
	TableStoreBookCollection = 24
	TableCollectionName      = 25
	TableStoreBook           = 26
	TableStoreBookRelease    = 27
	TableStoreBookSeries     = 28
	TableSeriesName          = 29
	TableCategory            = 30
	TableCategoryName        = 31
)

// DefaultLanguage is the fallback language for localized lookups.
const DefaultLanguage = "en"

// SupportedLanguages is the fixed set of languages accepted for any
// language path parameter or payload field.
var SupportedLanguages = []string{"en", "de", "fr", "es"}

// LanguageSupported reports whether lang is in the supported set.
func LanguageSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}

	return false
}

// PubSub provider names, matching the config "pubsub.provider" values.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
