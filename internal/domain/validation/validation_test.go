package validation

import (
	"testing"

	domainerrors "pocketlib/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Ruleset{
	{
		Name: "first_name", Required: true, Type: String, MinLen: 2, MaxLen: 20,
		Codes: Codes{Missing: 2101, WrongType: 2201, TooShort: 2301, TooLong: 2401},
	},
	{
		Name: "last_name", Required: true, Type: String, MinLen: 2, MaxLen: 20,
		Codes: Codes{Missing: 2102, WrongType: 2202, TooShort: 2302, TooLong: 2402},
	},
	{
		Name: "website_url", Required: false, Type: String, MinLen: 3, MaxLen: 100,
		Codes: Codes{WrongType: 2203, TooShort: 2303, TooLong: 2403},
	},
	{
		Name: "price", Required: false, Type: Number, Min: Zero(),
		Codes: Codes{WrongType: 2204, InvalidValue: 2501},
	},
	{
		Name: "language", Required: false, Type: String, LanguageCode: true,
		Codes: Codes{WrongType: 2205},
	},
}

func fieldCodes(t *testing.T, err error) []int {
	t.Helper()
	var vErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	codes := make([]int, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		codes = append(codes, f.Code)
	}

	return codes
}

func TestValidate_AllValid(t *testing.T) {
	err := Validate(map[string]any{
		"first_name": "Lemony",
		"last_name":  "Snicket",
		"price":      float64(1299),
		"language":   "en",
	}, testRules)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredFieldsInDeclarationOrder(t *testing.T) {
	err := Validate(map[string]any{}, testRules)
	assert.Equal(t, []int{2101, 2102}, fieldCodes(t, err))
}

func TestValidate_MissingSuppressesLengthChecks(t *testing.T) {
	// first_name absent: only the Missing code may appear for it.
	err := Validate(map[string]any{"last_name": "S"}, testRules)
	assert.Equal(t, []int{2101, 2302}, fieldCodes(t, err))
}

func TestValidate_WrongTypeStopsFurtherChecks(t *testing.T) {
	// A numeric first_name must yield the WrongType code only, even
	// though its "length" would also be out of bounds.
	err := Validate(map[string]any{
		"first_name": float64(12),
		"last_name":  "Snicket",
	}, testRules)
	assert.Equal(t, []int{2201}, fieldCodes(t, err))
}

func TestValidate_TooShortAndTooLongAcrossFields(t *testing.T) {
	long := make([]byte, 25)
	for i := range long {
		long[i] = 'a'
	}

	err := Validate(map[string]any{
		"first_name": "L",
		"last_name":  string(long),
	}, testRules)
	assert.Equal(t, []int{2301, 2402}, fieldCodes(t, err))
}

func TestValidate_OptionalEmptyStringIsNotAnError(t *testing.T) {
	// Empty string on an optional field means "clear this field".
	err := Validate(map[string]any{
		"first_name":  "Lemony",
		"last_name":   "Snicket",
		"website_url": "",
	}, testRules)
	assert.NoError(t, err)
}

func TestValidate_NegativePriceIsInvalidValue(t *testing.T) {
	err := Validate(map[string]any{
		"first_name": "Lemony",
		"last_name":  "Snicket",
		"price":      float64(-1),
	}, testRules)
	assert.Equal(t, []int{2501}, fieldCodes(t, err))
}

func TestValidate_UnsupportedLanguageSupersedesEverything(t *testing.T) {
	// Both required fields are missing too, but the language error is
	// returned alone.
	err := Validate(map[string]any{"language": "zz"}, testRules)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrLanguageNotSupported)

	var vErr *domainerrors.ValidationError
	assert.False(t, errorAs(err, &vErr), "field errors must be suppressed")
}

func errorAs(err error, target **domainerrors.ValidationError) bool {
	v, ok := err.(*domainerrors.ValidationError)
	if ok {
		*target = v
	}

	return ok
}

func TestValidate_BooleanWrongType(t *testing.T) {
	rules := Ruleset{
		{
			Name: "hidden", Required: false, Type: Boolean,
			Codes: Codes{WrongType: 2206},
		},
	}

	err := Validate(map[string]any{"hidden": "yes"}, rules)
	assert.Equal(t, []int{2206}, fieldCodes(t, err))

	err = Validate(map[string]any{"hidden": true}, rules)
	assert.NoError(t, err)
}
