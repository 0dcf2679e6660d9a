package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPoints(t *testing.T) {
	assert.Equal(t, 8, DefaultPoints("legion"))
	assert.Equal(t, 15, DefaultPoints("development"))
	assert.Equal(t, 0, DefaultPoints("no-such-type"))
	assert.Equal(t, 0, DefaultPoints(""))
}

func TestAvailableTypes(t *testing.T) {
	values := func(types []ActivityType) []string {
		out := make([]string, 0, len(types))
		for _, at := range types {
			out = append(out, at.Value)
		}
		return out
	}

	// Week 3: golden expedition runs, KvK prep does not, legion always does.
	week3 := values(AvailableTypes(3))
	assert.Contains(t, week3, "golden-expedition")
	assert.NotContains(t, week3, "kvk-prep")
	assert.Contains(t, week3, "legion")

	week2 := values(AvailableTypes(2))
	assert.Contains(t, week2, "kvk-prep")
	assert.NotContains(t, week2, "golden-expedition")
}
