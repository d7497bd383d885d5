package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordPostServed(t *testing.T) {
	for _, surface := range []string{"list", "detail", "sidebar", "preview", ""} {
		t.Run("surface "+surface, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordPostServed(surface)
			})
		})
	}
}

func TestUpdatePostsTotal(t *testing.T) {
	for _, count := range []int64{0, 1, 5000} {
		assert.NotPanics(t, func() {
			UpdatePostsTotal(count)
		})
	}
}

func TestRecordSnapshotRefresh(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSnapshotRefresh(true, 250*time.Millisecond)
		RecordSnapshotRefresh(false, 2*time.Second)
	})
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		operation string
		duration  time.Duration
	}{
		{"list_page", 5 * time.Millisecond},
		{"get_post_by_slug", 2 * time.Millisecond},
		{"", 0},
	}
	for _, tt := range tests {
		assert.NotPanics(t, func() {
			RecordDBQuery(tt.operation, tt.duration)
		})
	}
}

func TestUpdateDBConnectionStats(t *testing.T) {
	assert.NotPanics(t, func() {
		UpdateDBConnectionStats(5, 3)
		UpdateDBConnectionStats(0, 0)
	})
}
