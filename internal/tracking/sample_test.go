package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubjectID(t *testing.T) {
	t.Parallel()

	for _, id := range Subjects {
		got, err := ParseSubjectID(string(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := ParseSubjectID("turtle_c")
	assert.Error(t, err)
	_, err = ParseSubjectID("")
	assert.Error(t, err)
}

func TestParseInteractionLabel(t *testing.T) {
	t.Parallel()

	for _, label := range InteractionLabels {
		got, err := ParseInteractionLabel(string(label))
		require.NoError(t, err)
		assert.Equal(t, label, got)
	}

	_, err := ParseInteractionLabel("flee")
	assert.Error(t, err)
}

func TestBySubjectPreservesOrder(t *testing.T) {
	t.Parallel()

	samples := []Sample{
		sampleAt(SubjectB, 9, 9),
		sampleAt(SubjectA, 1, 1),
		sampleAt(SubjectB, 8, 8),
		sampleAt(SubjectA, 2, 2),
	}

	seriesA := BySubject(samples, SubjectA)
	require.Len(t, seriesA, 2)
	assert.Equal(t, 1.0, seriesA[0].X)
	assert.Equal(t, 2.0, seriesA[1].X)

	seriesB := BySubject(samples, SubjectB)
	require.Len(t, seriesB, 2)
	assert.Equal(t, 9.0, seriesB[0].X)
	assert.Equal(t, 8.0, seriesB[1].X)

	assert.Empty(t, BySubject(nil, SubjectA))
}
