package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleCoursesReferenceSeededCatalog(t *testing.T) {
	for _, c := range sampleCourses {
		assert.Contains(t, sampleSeasons, c.season, c.code)
		assert.Contains(t, sampleCategories, c.category, c.code)
		assert.Positive(t, c.credits, c.code)
	}
}
