package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleStation struct {
	Name string `json:"name" validate:"required"`
}

type sampleRequest struct {
	Station  sampleStation `json:"station"`
	Date     string        `json:"bookingDate" validate:"required,isodate"`
	Duration int           `json:"duration" validate:"gte=15,lte=525600"`
	Notes    string        `json:"notes" validate:"max=5"`
	Issues   []string      `json:"issues" validate:"omitempty,dive,review_issue"`
}

func TestValidateStructReportsEveryField(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Date:     "next tuesday",
		Duration: 10,
		Notes:    "way too long",
		Issues:   []string{"Other", "Smells"},
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Contains(t, fields, "station.name")
	assert.Contains(t, fields, "bookingDate")
	assert.Contains(t, fields, "duration")
	assert.Contains(t, fields, "notes")
	assert.Contains(t, fields, "issues[1]")
	assert.Equal(t, "must be at least 15", fields["duration"])
}

func TestValidateStructAccepts(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Station:  sampleStation{Name: "Hub"},
		Date:     "2026-03-01",
		Duration: 525600,
		Issues:   []string{"Charger not working"},
	})
	assert.NoError(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	d, err = ParseDate("2026-03-01T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("01/03/2026")
	assert.Error(t, err)
}
