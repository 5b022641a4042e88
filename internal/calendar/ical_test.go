package calendar_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifecalendar/internal/calendar"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

func TestICS_Events(t *testing.T) {
	l, err := calendar.NewLayout(day(2000, 1, 1), day(2002, 6, 1))
	require.NoError(t, err)
	stamp := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	data, err := calendar.ICS(l, stamp)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	prodID, err := cal.Props.Text(config.PropProdid)
	require.NoError(t, err)
	assert.Equal(t, config.ICalProdid, prodID)

	events := cal.Events()
	require.Len(t, events, len(l.Pages)+1, "one event per year page plus the final day")

	tests := []struct {
		summary string
		date    string
		suffix  string
	}{
		{"Year 1 begins", "20000101", "-1@"},
		{"Year 2 begins", "20010101", "-2@"},
		{"Year 3 begins", "20020101", "-3@"},
		{config.EventFinalDay, "20020601", "-final@"},
	}

	uids := make(map[string]bool)
	for i, tt := range tests {
		ev := events[i]

		summary, err := ev.Props.Text(config.PropSummary)
		require.NoError(t, err)
		assert.Equal(t, tt.summary, summary)

		start := ev.Props.Get(config.PropDTStart)
		require.NotNil(t, start)
		assert.Equal(t, tt.date, start.Value)

		uid, err := ev.Props.Text(config.PropUID)
		require.NoError(t, err)
		assert.Contains(t, uid, tt.suffix)
		assert.True(t, strings.HasSuffix(uid, "@"+config.ICalDomain))
		uids[uid] = true
	}
	assert.Len(t, uids, len(tests), "UIDs must be unique")
}

// TestICS_StableUIDs checks that only DTSTAMP changes between exports.
func TestICS_StableUIDs(t *testing.T) {
	l, err := calendar.NewLayout(day(1990, 5, 20), day(2070, 5, 20))
	require.NoError(t, err)

	a, err := calendar.ICS(l, day(2020, 1, 1))
	require.NoError(t, err)
	b, err := calendar.ICS(l, day(2021, 1, 1))
	require.NoError(t, err)

	uidLines := func(data []byte) []string {
		var out []string
		for _, line := range strings.Split(string(data), "\r\n") {
			if strings.HasPrefix(line, config.PropUID+":") {
				out = append(out, line)
			}
		}
		return out
	}
	assert.NotEqual(t, a, b)
	assert.Equal(t, uidLines(a), uidLines(b))
	assert.Len(t, uidLines(a), 81)
}

func TestICS_EmptyRange(t *testing.T) {
	l, err := calendar.NewLayout(day(2000, 1, 1), day(2000, 1, 1))
	require.NoError(t, err)

	data, err := calendar.ICS(l, day(2000, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), config.EventFinalDay)
}
