package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser resolves relative due-date phrases to absolute dates. Prompted
// models are asked for ISO dates but occasionally echo the user's own
// wording instead, so the common Russian and English phrases are
// resolved here rather than dropped.
type Parser struct {
	location *time.Location
}

// New creates a parser that resolves dates in the given location.
// A nil location means the process-local timezone.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{location: loc}
}

var dayWords = map[string]int{
	"сегодня":      0,
	"today":        0,
	"завтра":       1,
	"tomorrow":     1,
	"послезавтра":  2,
	"через день":   1,
	"через неделю": 7,
	"через месяц":  -1, // calendar month, handled separately
}

var weekdays = map[string]time.Weekday{
	"понедельник": time.Monday,
	"вторник":     time.Tuesday,
	"среда":       time.Wednesday,
	"среду":       time.Wednesday,
	"четверг":     time.Thursday,
	"пятница":     time.Friday,
	"пятницу":     time.Friday,
	"суббота":     time.Saturday,
	"субботу":     time.Saturday,
	"воскресенье": time.Sunday,
	"monday":      time.Monday,
	"tuesday":     time.Tuesday,
	"wednesday":   time.Wednesday,
	"thursday":    time.Thursday,
	"friday":      time.Friday,
	"saturday":    time.Saturday,
	"sunday":      time.Sunday,
}

var durationRe = regexp.MustCompile(`^(?:через|in)\s+(\d+)\s+(дней|дня|день|недель|недели|неделю|месяцев|месяца|месяц|days?|weeks?|months?)$`)

// Parse converts a relative phrase to midnight of the target day.
// Unknown phrases return an error so the caller never guesses a date.
func (p *Parser) Parse(phrase string, base time.Time) (time.Time, error) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	phrase = strings.TrimPrefix(phrase, "в следующий ")
	phrase = strings.TrimPrefix(phrase, "в следующую ")
	phrase = strings.TrimPrefix(phrase, "next ")
	phrase = strings.TrimPrefix(phrase, "в ")
	phrase = strings.TrimPrefix(phrase, "во ")

	if days, ok := dayWords[phrase]; ok {
		if days < 0 {
			return p.startOfDay(base.AddDate(0, 1, 0)), nil
		}
		return p.startOfDay(base.AddDate(0, 0, days)), nil
	}

	if wd, ok := weekdays[phrase]; ok {
		return p.nextWeekday(wd, base), nil
	}

	if m := durationRe.FindStringSubmatch(phrase); m != nil {
		return p.addDuration(m[1], m[2], base)
	}

	return time.Time{}, fmt.Errorf("unrecognized date phrase: %q", phrase)
}

// addDuration handles patterns like "через 3 дня" or "in 2 weeks".
func (p *Parser) addDuration(amountStr, unit string, base time.Time) (time.Time, error) {
	amount, err := strconv.Atoi(amountStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration amount: %q", amountStr)
	}

	switch {
	case strings.HasPrefix(unit, "д") || strings.HasPrefix(unit, "day"):
		return p.startOfDay(base.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "нед") || strings.HasPrefix(unit, "week"):
		return p.startOfDay(base.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "мес") || strings.HasPrefix(unit, "month"):
		return p.startOfDay(base.AddDate(0, amount, 0)), nil
	}

	return time.Time{}, fmt.Errorf("unknown time unit: %q", unit)
}

// nextWeekday returns the next occurrence of the weekday, never today.
func (p *Parser) nextWeekday(target time.Weekday, base time.Time) time.Time {
	daysUntil := int(target - base.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return p.startOfDay(base.AddDate(0, 0, daysUntil))
}

// startOfDay returns midnight of the given day in the parser's location.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
