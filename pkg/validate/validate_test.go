package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string    `json:"name" validate:"required"`
	Rating *float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Due    time.Time `json:"due" validate:"required"`
}

func TestStruct(t *testing.T) {
	bad := 7.0
	err := Struct(sample{Rating: &bad})

	var verr *Error
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, map[string]string{"name": "required", "rating": "max", "due": "required"}, verr.Fields)
	assert.Equal(t, "validation failed: due: required, name: required, rating: max", verr.Error())
}

func TestStructValid(t *testing.T) {
	ok := 4.0
	assert.NoError(t, Struct(sample{Name: "x", Rating: &ok, Due: time.Now()}))
	assert.NoError(t, Struct(sample{Name: "x", Due: time.Now()}))
}

func TestField(t *testing.T) {
	assert.Equal(t, map[string]string{"vendor": "not_found"}, Field("vendor", "not_found").Fields)
}
