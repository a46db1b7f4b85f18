package impl

import (
	"pocketlib/internal/domain/validation"
)

// Field code blocks: 21xx missing, 22xx wrong type, 23xx too short,
// 24xx too long, 25xx invalid value. The last two digits identify the
// field and are stable across rulesets.
const (
	fieldFirstName    = 1
	fieldLastName     = 2
	fieldWebsiteURL   = 3
	fieldBio          = 4
	fieldName         = 5
	fieldDescription  = 6
	fieldAuthor       = 7
	fieldLanguage     = 8
	fieldCollection   = 9
	fieldTitle        = 10
	fieldPrice        = 11
	fieldISBN         = 12
	fieldStatus       = 13
	fieldCategories   = 14
	fieldReleaseName  = 15
	fieldReleaseNotes = 16
	fieldCollections  = 17
	fieldKey          = 18
)

func codes(field int) validation.Codes {
	return validation.Codes{
		Missing:      2100 + field,
		WrongType:    2200 + field,
		TooShort:     2300 + field,
		TooLong:      2400 + field,
		InvalidValue: 2500 + field,
	}
}

var createAuthorRules = validation.Ruleset{
	{Name: "first_name", Required: true, Type: validation.String, MinLen: 2, MaxLen: 20, Codes: codes(fieldFirstName)},
	{Name: "last_name", Required: true, Type: validation.String, MinLen: 2, MaxLen: 20, Codes: codes(fieldLastName)},
	{Name: "website_url", Type: validation.String, MaxLen: 100, Codes: codes(fieldWebsiteURL)},
}

var updateAuthorRules = validation.Ruleset{
	{Name: "first_name", Type: validation.String, MinLen: 2, MaxLen: 20, Codes: codes(fieldFirstName)},
	{Name: "last_name", Type: validation.String, MinLen: 2, MaxLen: 20, Codes: codes(fieldLastName)},
	{Name: "website_url", Type: validation.String, MaxLen: 100, Codes: codes(fieldWebsiteURL)},
}

var setBioRules = validation.Ruleset{
	{Name: "bio", Required: true, Type: validation.String, MaxLen: 2000, Codes: codes(fieldBio)},
}

var createPublisherRules = validation.Ruleset{
	{Name: "name", Required: true, Type: validation.String, MinLen: 2, MaxLen: 100, Codes: codes(fieldName)},
	{Name: "description", Type: validation.String, MaxLen: 1000, Codes: codes(fieldDescription)},
	{Name: "website_url", Type: validation.String, MaxLen: 100, Codes: codes(fieldWebsiteURL)},
}

var updatePublisherRules = validation.Ruleset{
	{Name: "name", Type: validation.String, MinLen: 2, MaxLen: 100, Codes: codes(fieldName)},
	{Name: "description", Type: validation.String, MaxLen: 1000, Codes: codes(fieldDescription)},
	{Name: "website_url", Type: validation.String, MaxLen: 100, Codes: codes(fieldWebsiteURL)},
}

var createCollectionRules = validation.Ruleset{
	{Name: "author", Type: validation.String, Codes: codes(fieldAuthor)},
	{Name: "name", Required: true, Type: validation.String, MinLen: 2, MaxLen: 100, Codes: codes(fieldName)},
	{Name: "language", Required: true, Type: validation.String, LanguageCode: true, Codes: codes(fieldLanguage)},
}

var setNameRules = validation.Ruleset{
	{Name: "name", Required: true, Type: validation.String, MinLen: 2, MaxLen: 100, Codes: codes(fieldName)},
}

var createStoreBookRules = validation.Ruleset{
	{Name: "collection", Type: validation.String, Codes: codes(fieldCollection)},
	{Name: "title", Required: true, Type: validation.String, MinLen: 2, MaxLen: 60, Codes: codes(fieldTitle)},
	{Name: "description", Type: validation.String, MaxLen: 2000, Codes: codes(fieldDescription)},
	{Name: "language", Required: true, Type: validation.String, LanguageCode: true, Codes: codes(fieldLanguage)},
	{Name: "price", Type: validation.Number, Min: validation.Zero(), Codes: codes(fieldPrice)},
	{Name: "isbn", Type: validation.String, MinLen: 10, MaxLen: 17, Codes: codes(fieldISBN)},
}

var updateStoreBookRules = validation.Ruleset{
	{Name: "title", Type: validation.String, MinLen: 2, MaxLen: 60, Codes: codes(fieldTitle)},
	{Name: "description", Type: validation.String, MaxLen: 2000, Codes: codes(fieldDescription)},
	{Name: "price", Type: validation.Number, Min: validation.Zero(), Codes: codes(fieldPrice)},
	{Name: "isbn", Type: validation.String, MinLen: 10, MaxLen: 17, Codes: codes(fieldISBN)},
	{Name: "status", Type: validation.String, Codes: codes(fieldStatus)},
}

var releaseRules = validation.Ruleset{
	{Name: "release_name", Type: validation.String, MaxLen: 100, Codes: codes(fieldReleaseName)},
	{Name: "release_notes", Type: validation.String, MaxLen: 1000, Codes: codes(fieldReleaseNotes)},
}

var createSeriesRules = validation.Ruleset{
	{Name: "author", Type: validation.String, Codes: codes(fieldAuthor)},
	{Name: "name", Type: validation.String, MinLen: 2, MaxLen: 100, Codes: codes(fieldName)},
	{Name: "language", Type: validation.String, LanguageCode: true, Codes: codes(fieldLanguage)},
}

var createCategoryRules = validation.Ruleset{
	{Name: "key", Required: true, Type: validation.String, MinLen: 2, MaxLen: 30, Codes: codes(fieldKey)},
	{Name: "name", Required: true, Type: validation.String, MinLen: 2, MaxLen: 100, Codes: codes(fieldName)},
	{Name: "language", Required: true, Type: validation.String, LanguageCode: true, Codes: codes(fieldLanguage)},
}
