package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-lifecalendar/internal/config"
)

// ParseDate accepts the full-date layouts found in forms and vCard BDAY
// fields. Year-less vCard dates (--MM-DD) are rejected because a life
// calendar needs the year.
func ParseDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return CalendarDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}

// BirthDateFromVCard returns the name and date of birth of the first card
// in r whose BDAY carries a full date. Malformed cards are skipped.
func BirthDateFromVCard(r io.Reader) (string, time.Time, error) {
	decoder := vcard.NewDecoder(r)
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A decoder error leaves the stream position undefined.
			return "", time.Time{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		dob, err := ParseDate(bday.Value)
		if err != nil {
			continue
		}

		name := ""
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}
		return name, dob, nil
	}
	return "", time.Time{}, errors.New(config.ErrNoBirthday)
}
