package validator

import (
	"encoding/json"
	"testing"

	"jobboard_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*ValidationError)
	require.True(t, ok, "unexpected error type %T", err)
	return ve.Errors
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	errs := validationErrors(t, v.Validate(&dto.RegisterRequest{Email: "nope", Password: "short"}))
	assert.Equal(t, "Invalid email", errs["email"])
	assert.Equal(t, "Must be at least 8 characters", errs["password"])
	assert.Equal(t, "Required", errs["name"])

	assert.NoError(t, v.Validate(&dto.RegisterRequest{Email: "a@b.co", Password: "password123", Name: "A"}))
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input interface{}
		field string
	}{
		{"otp letters", &dto.VerifyOTPRequest{Phone: "+911234567890", Code: "12a456"}, "code"},
		{"otp short", &dto.VerifyOTPRequest{Phone: "+911234567890", Code: "12345"}, "code"},
		{"bad date", &dto.ProjectRequest{Title: "x", StartDate: strPtr("2024-13-01")}, "startDate"},
		{"bad enum", &dto.ItSkillRequest{Name: "Go", Proficiency: strPtr("GURU")}, "proficiency"},
		{"bad status", &dto.ApplicationStatusQuery{Status: "LOST"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validationErrors(t, v.Validate(tt.input))
			assert.Contains(t, errs, tt.field)
		})
	}

	assert.NoError(t, v.Validate(&dto.VerifyOTPRequest{Phone: "+911234567890", Code: "123456"}))
	assert.NoError(t, v.Validate(&dto.ProjectRequest{Title: "x", StartDate: strPtr("")}))
	assert.NoError(t, v.Validate(&dto.ApplicationStatusQuery{Status: "INTERVIEW_SCHEDULED"}))
}

func TestValidate_OptionalFields(t *testing.T) {
	v := New()

	var absent dto.UpdateBasicProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.NoError(t, v.Validate(&absent))

	var null dto.UpdateBasicProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"gender":null,"currentSalary":null}`), &null))
	assert.NoError(t, v.Validate(&null))

	var bad dto.UpdateBasicProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"gender":"ROBOT","currentSalary":-1}`), &bad))
	errs := validationErrors(t, v.Validate(&bad))
	assert.Contains(t, errs, "gender")
	assert.Contains(t, errs, "currentSalary")
}

func strPtr(s string) *string { return &s }
