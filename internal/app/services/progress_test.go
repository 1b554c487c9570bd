package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/app/models"
)

func sampleCourses() []*models.Course {
	return []*models.Course{
		{ID: 1, Credits: 7.5},
		{ID: 2, Credits: 7.5},
		{ID: 3, Credits: 10},
		{ID: 4, Credits: 15},
	}
}

func TestTakenCredits(t *testing.T) {
	courses := sampleCourses()

	tests := []struct {
		name  string
		taken []int64
		want  float64
	}{
		{"nil set", nil, 0},
		{"empty set", []int64{}, 0},
		{"single", []int64{3}, 10},
		{"several", []int64{1, 2, 3}, 25},
		{"unknown ids ignored", []int64{4, 99}, 15},
		{"duplicates counted once", []int64{4, 4}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TakenCredits(courses, tt.taken))
		})
	}
}

func TestCueFor(t *testing.T) {
	assert.Equal(t, CueBelow, CueFor(25, 30, true))
	assert.Equal(t, CueMet, CueFor(30, 30, true))
	assert.Equal(t, CueMet, CueFor(32.5, 30, true))
	assert.Equal(t, CueNone, CueFor(30, 30, false))
}

func TestCueColor(t *testing.T) {
	assert.Equal(t, "red.50", CueBelow.Color())
	assert.Equal(t, "green.50", CueMet.Color())
	assert.Equal(t, "", CueNone.Color())
}

func TestNewProgress(t *testing.T) {
	assert.Nil(t, NewProgress(sampleCourses(), nil, 30))

	p := NewProgress(sampleCourses(), []int64{1, 2, 3}, 30)
	require.NotNil(t, p)
	assert.Equal(t, 25.0, p.Taken)
	assert.Equal(t, 30.0, p.Required)
	assert.Equal(t, CueBelow, p.Cue)
	assert.Equal(t, "red.50", p.Color)

	p = NewProgress(sampleCourses(), []int64{1, 2, 4}, 30)
	assert.Equal(t, CueMet, p.Cue)
	assert.Equal(t, "green.50", p.Color)

	p = NewProgress(sampleCourses(), []int64{}, 0)
	assert.Equal(t, CueMet, p.Cue)
}
