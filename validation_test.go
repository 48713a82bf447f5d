package ritmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewActivityValidate(t *testing.T) {
	valid := NewActivity{
		UserId:          1,
		Type:            "corrida",
		Title:           "corrida matinal",
		DistanceMeters:  5000,
		DurationMinutes: 30,
		Calories:        300,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(a *NewActivity)
		field  string
	}{
		{"missing user", func(a *NewActivity) { a.UserId = 0 }, "userId"},
		{"missing type", func(a *NewActivity) { a.Type = " " }, "type"},
		{"missing title", func(a *NewActivity) { a.Title = "" }, "title"},
		{"negative distance", func(a *NewActivity) { a.DistanceMeters = -1 }, "distanceMeters"},
		{"negative duration", func(a *NewActivity) { a.DurationMinutes = -0.5 }, "durationMinutes"},
		{"negative calories", func(a *NewActivity) { a.Calories = -300 }, "calories"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			activity := valid
			tc.mutate(&activity)
			err := activity.Validate()
			var validationErr ValidationError
			if assert.ErrorAs(t, err, &validationErr) {
				assert.Equal(t, tc.field, validationErr.Field)
			}
		})
	}

	// zero values for the numeric fields are allowed
	zeroed := valid
	zeroed.DistanceMeters = 0
	zeroed.DurationMinutes = 0
	zeroed.Calories = 0
	assert.NoError(t, zeroed.Validate())
}

func TestValidateCommentText(t *testing.T) {
	assert := assert.New(t)

	assert.Error(ValidateCommentText(""))
	assert.Error(ValidateCommentText("hi"))
	assert.Error(ValidateCommentText("  ab  "))
	assert.NoError(ValidateCommentText("nice run"))
	assert.NoError(ValidateCommentText("top"))
}
