package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "未知", FormatFileSize(0))
	assert.Equal(t, "未知", FormatFileSize(-3))
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1023 B", FormatFileSize(1023))
	assert.Equal(t, "1.00 KB", FormatFileSize(1024))
	assert.Equal(t, "1.50 KB", FormatFileSize(1536))
	assert.Equal(t, "1.00 MB", FormatFileSize(1024*1024))
	assert.Equal(t, "2.50 MB", FormatFileSize(2621440))
}

func TestTotalPages(t *testing.T) {
	assert.EqualValues(t, 5, TotalPages(80, 16))
	assert.EqualValues(t, 6, TotalPages(81, 16))
	assert.EqualValues(t, 0, TotalPages(0, 16))
	assert.EqualValues(t, 0, TotalPages(10, 0))
}

func TestParseTime(t *testing.T) {
	got, ok := ParseTime("2024-03-01 08:30:00")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC), got)

	got, ok = ParseTime("2024-03-01T08:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2024, got.Year())

	_, ok = ParseTime("")
	assert.False(t, ok)
	_, ok = ParseTime("yesterday")
	assert.False(t, ok)
}

func TestEnvelopeOK(t *testing.T) {
	assert.True(t, Envelope{Code: "200", Data: &Page{}}.OK())
	assert.False(t, Envelope{Code: "200"}.OK())
	assert.False(t, Envelope{Code: "500", Data: &Page{}}.OK())
}
