package holidays

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	entries []PublicHoliday
	err     error
}

func (m *mockSource) PublicHolidays(ctx context.Context, year int, countryCode string) ([]PublicHoliday, error) {
	return m.entries, m.err
}

type mockWriter struct {
	existing map[string]bool
	written  map[string]string
}

func newMockWriter(existing ...string) *mockWriter {
	w := &mockWriter{existing: map[string]bool{}, written: map[string]string{}}
	for _, d := range existing {
		w.existing[d] = true
	}
	return w
}

func (m *mockWriter) CreateKeepName(ctx context.Context, date time.Time, name, countryCode string) (bool, error) {
	key := date.Format("2006-01-02")
	if m.existing[key] {
		return false, nil
	}
	m.existing[key] = true
	m.written[key] = name
	return true, nil
}

func TestImporter_FeedAndSundays(t *testing.T) {
	source := &mockSource{entries: []PublicHoliday{
		{Date: "2025-12-25", LocalName: "Første juledag", Name: "Christmas Day"},
		{Date: "2025-05-17", LocalName: "Grunnlovsdagen", Name: "Constitution Day"},
	}}
	writer := newMockWriter()

	stats, err := NewImporter(source, writer).Run(context.Background(), ImportOptions{
		Year:           2025,
		CountryCode:    "NO",
		IncludeSundays: true,
	})
	require.NoError(t, err)

	// 2025 has 52 Sundays
	assert.Equal(t, 54, stats.Created)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, "Første juledag", writer.written["2025-12-25"])
	assert.Equal(t, "Søndag", writer.written["2025-01-05"])
}

func TestImporter_KeepsExistingNames(t *testing.T) {
	source := &mockSource{entries: []PublicHoliday{
		{Date: "2025-12-25", LocalName: "Første juledag"},
	}}
	writer := newMockWriter("2025-12-25")

	stats, err := NewImporter(source, writer).Run(context.Background(), ImportOptions{
		Year:        2025,
		CountryCode: "NO",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 1, stats.Skipped)
	assert.NotContains(t, writer.written, "2025-12-25")
}

func TestImporter_FeedFailureStillImportsSundays(t *testing.T) {
	source := &mockSource{err: errors.New("upstream down")}
	writer := newMockWriter()

	stats, err := NewImporter(source, writer).Run(context.Background(), ImportOptions{
		Year:           2025,
		CountryCode:    "NO",
		IncludeSundays: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 52, stats.Created)
}

func TestImporter_SkipAPI(t *testing.T) {
	source := &mockSource{entries: []PublicHoliday{{Date: "2025-12-25", LocalName: "Første juledag"}}}
	writer := newMockWriter()

	stats, err := NewImporter(source, writer).Run(context.Background(), ImportOptions{
		Year:           2025,
		CountryCode:    "NO",
		SkipAPI:        true,
		IncludeSundays: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 52, stats.Created)
	assert.NotContains(t, writer.written, "2025-12-25")
}

func TestSundaysOfYear(t *testing.T) {
	sundays := sundaysOfYear(2025)
	require.Len(t, sundays, 52)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), sundays[0])
	assert.Equal(t, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), sundays[51])
	for _, d := range sundays {
		assert.Equal(t, time.Sunday, d.Weekday())
	}
}

func TestImporter_MalformedDateSkipped(t *testing.T) {
	source := &mockSource{entries: []PublicHoliday{
		{Date: "not-a-date", LocalName: "Broken"},
		{Date: "2025-12-25", LocalName: "Første juledag"},
	}}
	writer := newMockWriter()

	stats, err := NewImporter(source, writer).Run(context.Background(), ImportOptions{
		Year:        2025,
		CountryCode: "NO",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Skipped)
}
