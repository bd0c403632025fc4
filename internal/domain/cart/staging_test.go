// internal/domain/cart/staging_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageDeltaClampsAtZero(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int
		want   int
	}{
		{name: "no deltas", deltas: nil, want: 0},
		{name: "single increment", deltas: []int{1}, want: 1},
		{name: "sum of increments", deltas: []int{1, 1, 1}, want: 3},
		{name: "decrement clamps at zero", deltas: []int{-5}, want: 0},
		{name: "clamp is per step, not per sum", deltas: []int{2, -5, 3}, want: 3},
		{name: "up and down", deltas: []int{3, -1, -1}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStaging()
			var got int
			for _, d := range tt.deltas {
				got = st.StageDelta(7, 42, d)
			}
			if len(tt.deltas) == 0 {
				got = st.Pending(7, 42)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, st.Pending(7, 42))
		})
	}
}

func TestStagingIsPerUserAndProduct(t *testing.T) {
	st := NewStaging()
	st.StageDelta(1, 10, 2)
	st.StageDelta(1, 11, 5)
	st.StageDelta(2, 10, 1)

	assert.Equal(t, 2, st.Pending(1, 10))
	assert.Equal(t, 5, st.Pending(1, 11))
	assert.Equal(t, 1, st.Pending(2, 10))
}

func TestTakeResetsAndRestoreReturns(t *testing.T) {
	st := NewStaging()
	st.StageDelta(1, 10, 4)

	taken := st.take(1, 10)
	assert.Equal(t, 4, taken)
	assert.Equal(t, 0, st.Pending(1, 10), "take resets pending to zero")

	// A failed commit hands the attempted amount back
	restored := st.StageDelta(1, 10, taken)
	assert.Equal(t, 4, restored)
	assert.Equal(t, 4, st.Pending(1, 10))
}

func TestTakeOnUntouchedProductIsZero(t *testing.T) {
	st := NewStaging()
	assert.Equal(t, 0, st.take(1, 10))
}
