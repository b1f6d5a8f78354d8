package timeline_test

import (
	"testing"

	"github.com/hammad535/task-manager/internal/dates"
	"github.com/hammad535/task-manager/internal/timeline"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

const today = "2025-06-05"

func TestValidate_AcceptsOrderedPair(t *testing.T) {
	result, err := timeline.Validate(strPtr("2025-06-01"), strPtr("2025-06-10"), today)

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-01", *result.Start)
	assert.Equal(t, "2025-06-10", *result.End)
}

func TestValidate_RejectsStartAfterEnd(t *testing.T) {
	_, err := timeline.Validate(strPtr("2025-06-10"), strPtr("2025-06-08"), today)

	assert.ErrorIs(t, err, timeline.ErrStartAfterEnd)
}

func TestValidate_RejectsPastDeadline(t *testing.T) {
	_, err := timeline.Validate(nil, strPtr("2020-01-01"), today)

	assert.ErrorIs(t, err, timeline.ErrPastDeadline)
}

func TestValidate_RejectsPastDeadlineAgainstRealClock(t *testing.T) {
	_, err := timeline.Validate(nil, strPtr("2020-01-01"), dates.Today())

	assert.ErrorIs(t, err, timeline.ErrPastDeadline)
}

func TestValidate_DistinguishesInvalidField(t *testing.T) {
	_, err := timeline.Validate(strPtr("garbage"), strPtr("2025-06-10"), today)
	assert.ErrorIs(t, err, timeline.ErrInvalidStart)

	_, err = timeline.Validate(strPtr("2025-06-01"), strPtr("garbage"), today)
	assert.ErrorIs(t, err, timeline.ErrInvalidEnd)
}

func TestValidate_PartialUpdateOnlyChecksPresentFields(t *testing.T) {
	// Only the start date is in the request; a stored end date that is
	// now in the past must not block the write.
	result, err := timeline.Validate(strPtr("2025-06-08"), nil, today)

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-08", *result.Start)
	assert.Nil(t, result.End)
}

func TestValidate_EmptyClearsDate(t *testing.T) {
	result, err := timeline.Validate(strPtr(""), strPtr(""), today)

	assert.NoError(t, err)
	assert.Equal(t, "", *result.Start)
	assert.Equal(t, "", *result.End)
}

func TestValidate_NothingProvided(t *testing.T) {
	result, err := timeline.Validate(nil, nil, today)

	assert.NoError(t, err)
	assert.Nil(t, result.Start)
	assert.Nil(t, result.End)
}

func TestValidate_NormalizesTimestampInputs(t *testing.T) {
	result, err := timeline.Validate(nil, strPtr("2099-06-10T15:30:00Z"), today)

	assert.NoError(t, err)
	assert.Regexp(t, `^2099-06-(09|10|11)$`, *result.End)
}
