package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// ICS exports the life span as an iCalendar feed: one all-day event at
// the start of every year page and one on the estimated final day.
// stamp becomes the DTSTAMP of every event.
func ICS(l Layout, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(stamp.UTC())

	// Deterministic UID base so subscribers see stable events across refreshes.
	input := fmt.Sprintf(config.FormatHashInput,
		l.Birth.Format(config.DateFormatFullDash), l.Death.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	for _, page := range l.Pages {
		start := l.Birth.AddDate(page.Index-1, 0, 0)
		summary := fmt.Sprintf(config.EventYearBegins, page.Index)
		cal.Children = append(cal.Children,
			allDayEvent(uidBase, strconv.Itoa(page.Index), summary, start, dtStamp).Component)
	}
	cal.Children = append(cal.Children,
		allDayEvent(uidBase, config.UIDSuffixFinal, config.EventFinalDay, l.Death, dtStamp).Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func allDayEvent(uidBase, suffix, summary string, day time.Time, dtStamp *ical.Prop) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, suffix, config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(day)
	event.Props.Set(dtStart)
	return event
}
