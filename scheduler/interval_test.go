package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tr(startHour, startMin, endHour, endMin int) TimeRange {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return TimeRange{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"disjoint", tr(9, 0, 10, 0), tr(11, 0, 12, 0), false},
		{"touching endpoints do not overlap", tr(9, 0, 10, 0), tr(10, 0, 11, 0), false},
		{"partial overlap", tr(9, 0, 10, 30), tr(10, 0, 11, 0), true},
		{"identical", tr(9, 0, 10, 0), tr(9, 0, 10, 0), true},
		{"a encompasses b", tr(9, 0, 12, 0), tr(10, 0, 11, 0), true},
		{"b encompasses a", tr(10, 0, 11, 0), tr(9, 0, 12, 0), true},
		{"one minute past the boundary", tr(9, 0, 10, 1), tr(10, 0, 11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name  string
		base  TimeRange
		block TimeRange
		want  []TimeRange
	}{
		{
			name:  "block fully outside leaves base untouched",
			base:  tr(9, 0, 17, 0),
			block: tr(18, 0, 19, 0),
			want:  []TimeRange{tr(9, 0, 17, 0)},
		},
		{
			name:  "block equal to base empties it",
			base:  tr(9, 0, 17, 0),
			block: tr(9, 0, 17, 0),
			want:  nil,
		},
		{
			name:  "block in the middle splits base in two",
			base:  tr(9, 0, 17, 0),
			block: tr(12, 0, 13, 0),
			want:  []TimeRange{tr(9, 0, 12, 0), tr(13, 0, 17, 0)},
		},
		{
			name:  "block over the start trims the left edge",
			base:  tr(9, 0, 17, 0),
			block: tr(8, 0, 11, 0),
			want:  []TimeRange{tr(11, 0, 17, 0)},
		},
		{
			name:  "block over the end trims the right edge",
			base:  tr(9, 0, 17, 0),
			block: tr(15, 0, 18, 0),
			want:  []TimeRange{tr(9, 0, 15, 0)},
		},
		{
			name:  "block covering base empties it",
			base:  tr(9, 0, 17, 0),
			block: tr(8, 0, 18, 0),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.base.Subtract(tt.block))
		})
	}
}

func TestSubtractAll(t *testing.T) {
	open := SubtractAll(
		[]TimeRange{tr(9, 0, 17, 0)},
		[]TimeRange{tr(12, 0, 13, 0), tr(15, 0, 15, 30)},
	)
	assert.Equal(t, []TimeRange{
		tr(9, 0, 12, 0),
		tr(13, 0, 15, 0),
		tr(15, 30, 17, 0),
	}, open)
}

func TestContains(t *testing.T) {
	base := tr(9, 0, 12, 0)
	assert.True(t, base.Contains(tr(9, 0, 12, 0)))
	assert.True(t, base.Contains(tr(10, 0, 11, 0)))
	assert.False(t, base.Contains(tr(11, 30, 12, 30)))
	assert.False(t, base.Contains(tr(8, 30, 9, 30)))
}
