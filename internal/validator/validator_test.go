package validator_test

import (
	"errors"
	"testing"

	"clubhub/internal/model"
	"clubhub/internal/validator"

	"github.com/stretchr/testify/assert"
)

type categoryProbe struct {
	Category model.EventCategory `validate:"required,event_category"`
}

func TestEventCategoryTag(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name     string
		category model.EventCategory
		isValid  bool
	}{
		{"workshop", model.CategoryWorkshop, true},
		{"seminar", model.CategorySeminar, true},
		{"competition", model.CategoryCompetition, true},
		{"awareness", model.CategoryAwareness, true},
		{"unknown_value", "concert", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(categoryProbe{Category: tt.category})
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	v := validator.New()

	err := v.Validate(categoryProbe{Category: "concert"})
	assert.True(t, validator.IsValidationError(err))

	assert.False(t, validator.IsValidationError(errors.New("plain error")))
	assert.False(t, validator.IsValidationError(nil))
}
