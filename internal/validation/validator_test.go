package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleReview struct {
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	Location    string  `json:"location" validate:"required,location"`
	VisitedDate string  `json:"visited_date" validate:"required,date"`
	Text        *string `json:"review_text" validate:"omitempty,min=1"`
}

type sampleFeed struct {
	Name string `json:"name" validate:"required,feed"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(&sampleReview{Rating: 5, Location: "hampshire", VisitedDate: "2024-01-01"})
	require.NoError(t, err)
}

func TestValidateStruct_ReportsJSONNames(t *testing.T) {
	err := ValidateStruct(&sampleReview{Rating: 9, Location: "dewey", VisitedDate: "01/01/2024"})
	require.Error(t, err)

	var ve *RequestValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 3)

	fields := map[string]string{}
	for _, f := range ve.Fields {
		fields[f.Field] = f.Tag
	}
	require.Equal(t, "max", fields["rating"])
	require.Equal(t, "location", fields["location"])
	require.Equal(t, "date", fields["visited_date"])
	require.Contains(t, err.Error(), "rating must be at most 5")
}

func TestValidateStruct_Required(t *testing.T) {
	err := ValidateStruct(&sampleReview{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "rating is required")
	require.Contains(t, err.Error(), "location is required")
}

func TestValidateStruct_OptionalPointer(t *testing.T) {
	err := ValidateStruct(&sampleReview{Rating: 1, Location: "worcester", VisitedDate: "2024-12-31"})
	require.NoError(t, err, "nil optional fields are skipped")

	text := "fine"
	err = ValidateStruct(&sampleReview{Rating: 1, Location: "worcester", VisitedDate: "2024-12-31", Text: &text})
	require.NoError(t, err)
}

func TestValidateStruct_Feed(t *testing.T) {
	require.NoError(t, ValidateStruct(&sampleFeed{Name: "index"}))
	require.NoError(t, ValidateStruct(&sampleFeed{Name: "franklin"}))
	require.Error(t, ValidateStruct(&sampleFeed{Name: "elsewhere"}))
}
