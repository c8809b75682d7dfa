package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Date  string `json:"date" validate:"required,date"`
	Start string `json:"startTime" validate:"required,hhmm"`
	Email string `json:"customerEmail" validate:"required,email"`
	Count int    `json:"count" validate:"gte=1"`
}

func TestStruct(t *testing.T) {
	ok := sample{Date: "2025-01-15", Start: "09:30", Email: "a@b.cz", Count: 1}
	assert.NoError(t, Struct(ok))

	bad := sample{Date: "15.01.2025", Start: "25:00", Email: "nope", Count: 0}
	err := Struct(bad)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "date: date")
		assert.Contains(t, err.Error(), "startTime: hhmm")
		assert.Contains(t, err.Error(), "customerEmail: email")
		assert.Contains(t, err.Error(), "count: gte=1")
	}
}
