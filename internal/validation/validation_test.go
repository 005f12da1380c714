package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registrationPayload struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

type taskPayload struct {
	Title            string `json:"title" validate:"required"`
	AssignedToUserID int64  `json:"assignedToUserId" validate:"gt=0"`
}

func TestCheck_Registration(t *testing.T) {
	tests := []struct {
		name       string
		payload    registrationPayload
		violations []string
	}{
		{
			name: "valid",
			payload: registrationPayload{
				Username:        "alice",
				Email:           "a@x.com",
				Password:        "p1",
				ConfirmPassword: "p1",
			},
			violations: nil,
		},
		{
			name: "missing username",
			payload: registrationPayload{
				Email:           "a@x.com",
				Password:        "p1",
				ConfirmPassword: "p1",
			},
			violations: []string{"username is required"},
		},
		{
			name: "password mismatch",
			payload: registrationPayload{
				Username:        "alice",
				Email:           "a@x.com",
				Password:        "p1",
				ConfirmPassword: "p2",
			},
			violations: []string{"confirmPassword must match password"},
		},
		{
			name:    "everything missing",
			payload: registrationPayload{},
			violations: []string{
				"username is required",
				"email is required",
				"password is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.payload)
			if tt.violations == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.violations, got)
		})
	}
}

func TestCheck_Task(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, Check(taskPayload{Title: "t1", AssignedToUserID: 1}))
	})

	t.Run("empty title", func(t *testing.T) {
		got := Check(taskPayload{AssignedToUserID: 1})
		assert.Equal(t, []string{"title is required"}, got)
	})

	t.Run("missing assignee", func(t *testing.T) {
		got := Check(taskPayload{Title: "t1"})
		assert.Equal(t, []string{"assignedToUserId must be a positive integer"}, got)
	})
}
