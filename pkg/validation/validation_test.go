package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Email     string  `json:"email" binding:"required,email,max=120"`
	FirstName string  `json:"firstName" binding:"required,max=50"`
	Nickname  *string `json:"nickname" binding:"omitempty,min=3"`
}

func TestMessage_UsesJSONNames(t *testing.T) {
	RegisterJSONTagNames()

	err := binding.Validator.ValidateStruct(&signup{Email: "a@b.co"})
	assert.Equal(t, "firstName is required", Message(err, "fallback"))

	err = binding.Validator.ValidateStruct(&signup{Email: "nope", FirstName: "A"})
	assert.Equal(t, "Invalid email format", Message(err, "fallback"))

	short := "ab"
	err = binding.Validator.ValidateStruct(&signup{Email: "a@b.co", FirstName: "A", Nickname: &short})
	assert.Equal(t, "nickname must be at least 3 characters", Message(err, "fallback"))

	assert.NoError(t, binding.Validator.ValidateStruct(&signup{Email: "a@b.co", FirstName: "A"}))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "Invalid request format", Message(errors.New("unexpected EOF"), "Invalid request format"))
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "lastName is required", DefaultMessage("lastName", "required", ""))
	assert.Equal(t, "firstName must be at most 50 characters", DefaultMessage("firstName", "max", "50"))
	assert.Equal(t, "role is invalid", DefaultMessage("role", "regex", ""))
}
