package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
)

type upsertInput struct {
	Status  string  `json:"status" validate:"required"`
	Skills  string  `json:"skills" validate:"required"`
	Company *string `json:"company,omitempty"`
}

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStructCollectsEveryViolation(t *testing.T) {
	violations := Struct(upsertInput{})
	require.Len(t, violations, 2)

	require.Equal(t, "status", violations[0].Param)
	require.Equal(t, "Status is required", violations[0].Msg)
	require.Equal(t, "skills", violations[1].Param)
	require.Equal(t, "Skills is required", violations[1].Msg)
}

func TestStructValidInputHasNoViolations(t *testing.T) {
	require.Nil(t, Struct(upsertInput{Status: "Developer", Skills: "Go,SQL"}))
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name  string
		input registerInput
		param string
		msg   string
	}{
		{
			name:  "missing name",
			input: registerInput{Email: "a@b.co", Password: "longenough"},
			param: "name",
			msg:   "Name is required",
		},
		{
			name:  "invalid email",
			input: registerInput{Name: "x", Email: "not-an-email", Password: "longenough"},
			param: "email",
			msg:   "Please include a valid email",
		},
		{
			name:  "short password",
			input: registerInput{Name: "x", Email: "a@b.co", Password: "abc"},
			param: "password",
			msg:   "Please enter a password with 6 or more characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Struct(tt.input)
			require.Len(t, violations, 1)
			require.Equal(t, tt.param, violations[0].Param)
			require.Equal(t, tt.msg, violations[0].Msg)
		})
	}
}

func TestStructEntryMessages(t *testing.T) {
	type experienceInput struct {
		Title   string `json:"title" validate:"required"`
		Company string `json:"company" validate:"required"`
		From    string `json:"from" validate:"required"`
	}
	type educationInput struct {
		School       string `json:"school" validate:"required"`
		Degree       string `json:"degree" validate:"required"`
		FieldOfStudy string `json:"fieldofstudy" validate:"required"`
		From         string `json:"from" validate:"required"`
	}
	type postInput struct {
		Text string `json:"text" validate:"required"`
	}

	expViolations := Struct(experienceInput{})
	require.Equal(t, []apperror.Violation{
		{Param: "title", Msg: "title is required"},
		{Param: "company", Msg: "company is required"},
		{Param: "from", Msg: "From date is required"},
	}, expViolations)

	eduViolations := Struct(educationInput{})
	require.Equal(t, []apperror.Violation{
		{Param: "school", Msg: "school is required"},
		{Param: "degree", Msg: "degree is required"},
		{Param: "fieldofstudy", Msg: "Field of study is required"},
		{Param: "from", Msg: "From date is required"},
	}, eduViolations)

	postViolations := Struct(postInput{})
	require.Equal(t, []apperror.Violation{
		{Param: "text", Msg: "text is required"},
	}, postViolations)
}

func TestCheckReturnsValidationError(t *testing.T) {
	err := Check(upsertInput{})
	require.Error(t, err)
	require.True(t, apperror.IsValidationError(err))

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Len(t, appErr.Violations, 2)

	require.NoError(t, Check(upsertInput{Status: "Developer", Skills: "Go"}))
}
