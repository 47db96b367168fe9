package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	f := Filters{}
	f.Normalize(10, 100)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.PageSize)
	assert.Equal(t, 0, f.Offset())

	f = Filters{Page: 3, PageSize: 500}
	f.Normalize(10, 100)
	assert.Equal(t, 100, f.Limit())
	assert.Equal(t, 200, f.Offset())
}

func TestCalculateMetadata(t *testing.T) {
	assert.Equal(t, Metadata{}, CalculateMetadata(0, 1, 10))
	assert.Equal(t, Metadata{
		CurrentPage:  2,
		PageSize:     10,
		FirstPage:    1,
		LastPage:     3,
		TotalRecords: 21,
	}, CalculateMetadata(21, 2, 10))
}
