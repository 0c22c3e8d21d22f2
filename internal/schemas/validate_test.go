package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{
	"fields": [
		{"id": "company_name", "label": "회사명", "type": "text", "category": "company"}
	],
	"companyInfo": {"companyName": "테스트기업"},
	"programInfo": {"name": "창업성장기술개발사업"}
}`

func TestValidateGenerationRequest_Valid(t *testing.T) {
	assert.NoError(t, ValidateGenerationRequest([]byte(validBody)))
}

func TestValidateGenerationRequest_MissingRequired(t *testing.T) {
	body := `{"fields": [{"id": "a", "label": "A"}]}`

	err := ValidateGenerationRequest([]byte(body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateGenerationRequest_EmptyFields(t *testing.T) {
	body := `{
		"fields": [],
		"companyInfo": {"companyName": "x"},
		"programInfo": {"name": "y"}
	}`

	err := ValidateGenerationRequest([]byte(body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateGenerationRequest_BadEnum(t *testing.T) {
	body := `{
		"fields": [{"id": "a", "label": "A"}],
		"companyInfo": {"companyName": "x"},
		"programInfo": {"name": "y"},
		"options": {"tone": "casual"}
	}`

	err := ValidateGenerationRequest([]byte(body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	found := false
	for _, fe := range validationErr.Errors {
		if fe.Field == "options.tone" {
			found = true
		}
	}
	assert.True(t, found, "error should point at options.tone: %v", validationErr.Errors)
}

func TestValidateGenerationRequest_MalformedJSON(t *testing.T) {
	err := ValidateGenerationRequest([]byte(`{not json`))
	assert.Error(t, err)
}
