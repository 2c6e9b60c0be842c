package toml

import (
	"fmt"
	"strings"
	"time"
)

// LocalDate is a calendar date with no time and no zone attached.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String renders the date as "YYYY-MM-DD".
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LocalTime is a wall-clock time with no date and no zone attached.
type LocalTime struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// String renders the time as "HH:MM:SS", with the fractional second
// appended and trailing zeros trimmed when there is one.
func (t LocalTime) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%09d", t.Nanosecond), "0")
	}
	return s
}

// LocalDateTime couples a calendar date with a wall-clock time, still
// without a zone.
type LocalDateTime struct {
	LocalDate
	LocalTime
}

// String renders the RFC 3339 style "YYYY-MM-DDTHH:MM:SS" form.
func (dt LocalDateTime) String() string {
	return dt.LocalDate.String() + "T" + dt.LocalTime.String()
}

// DateTime is a TOML date-time value: one of the five shapes a literal can
// take. At least one of the calendar date and the wall-clock time is always
// present; the UTC offset appears only in the two offset-qualified shapes.
//
//	1979-05-27T07:32:00-07:00   date, time and offset
//	1979-05-27T07:32:00         date and time
//	1979-05-27                  date only
//	07:32:00-07:00              time and offset
//	07:32:00                    time only
//
// The component accessors return an *UnexpectedDateError when the requested
// component is absent, carrying this value so the caller can report what it
// actually got.
type DateTime struct {
	baseValue
	date   *LocalDate
	clock  *LocalTime
	offset *int // seconds east of UTC
}

// NewLocalDate builds a date-only value.
func NewLocalDate(d LocalDate) *DateTime {
	return newDateTime(&d, nil, nil, nil)
}

// NewLocalTime builds a time-only value.
func NewLocalTime(t LocalTime) *DateTime {
	return newDateTime(nil, &t, nil, nil)
}

// NewLocalDateTime builds a zone-less date and time value.
func NewLocalDateTime(d LocalDate, t LocalTime) *DateTime {
	return newDateTime(&d, &t, nil, nil)
}

// NewOffsetDateTime builds a date and time value pinned to a UTC offset,
// given in seconds east of UTC as for time.FixedZone.
func NewOffsetDateTime(d LocalDate, t LocalTime, offsetSeconds int) *DateTime {
	return newDateTime(&d, &t, &offsetSeconds, nil)
}

// NewOffsetTime builds a time-only value pinned to a UTC offset.
func NewOffsetTime(t LocalTime, offsetSeconds int) *DateTime {
	return newDateTime(nil, &t, &offsetSeconds, nil)
}

func newDateTime(date *LocalDate, clock *LocalTime, offset *int, loc *Location) *DateTime {
	if date == nil && clock == nil {
		panic("toml: a date-time needs a date or a time")
	}
	return &DateTime{
		baseValue: baseValue{kind: KindDateTime, loc: loc},
		date:      date,
		clock:     clock,
		offset:    offset,
	}
}

// IsDate reports whether a calendar date is present.
func (v *DateTime) IsDate() bool { return v.date != nil }

// IsTime reports whether a wall-clock time is present.
func (v *DateTime) IsTime() bool { return v.clock != nil }

// IsDateTime reports whether both components are present.
func (v *DateTime) IsDateTime() bool { return v.date != nil && v.clock != nil }

// Offset returns the UTC offset in seconds east of UTC, when present.
func (v *DateTime) Offset() (int, bool) {
	if v.offset == nil {
		return 0, false
	}
	return *v.offset, true
}

func (v *DateTime) AsDateTime() (*DateTime, error) { return v, nil }

func (v *DateTime) shapeError(reason string) error {
	return &UnexpectedDateError{Value: v, Reason: reason, Loc: v.loc}
}

// LocalDate returns the calendar date. A time-only value has none.
func (v *DateTime) LocalDate() (LocalDate, error) {
	if v.date == nil {
		return LocalDate{}, v.shapeError("missing date information")
	}
	return *v.date, nil
}

// LocalTime returns the wall-clock time. A date-only value has none.
func (v *DateTime) LocalTime() (LocalTime, error) {
	if v.clock == nil {
		return LocalTime{}, v.shapeError("missing time information")
	}
	return *v.clock, nil
}

// LocalDateTime returns both components, discarding any offset. It fails
// unless the value carries a date and a time.
func (v *DateTime) LocalDateTime() (LocalDateTime, error) {
	if v.date == nil {
		return LocalDateTime{}, v.shapeError("missing date information")
	}
	if v.clock == nil {
		return LocalDateTime{}, v.shapeError("missing time information")
	}
	return LocalDateTime{LocalDate: *v.date, LocalTime: *v.clock}, nil
}

// ResolveDateTime resolves the value into an absolute time.Time: against
// the explicit offset when the value has one, otherwise against the host's
// local zone rules, which account for daylight saving on that specific
// date. Both a date and a time must be present.
func (v *DateTime) ResolveDateTime() (time.Time, error) {
	dt, err := v.LocalDateTime()
	if err != nil {
		return time.Time{}, err
	}
	zone := time.Local
	if v.offset != nil {
		zone = fixedZone(*v.offset)
	}
	return time.Date(dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, zone), nil
}

// ResolveTime resolves the wall-clock time against the explicit offset when
// present, otherwise against fallbackOffset (seconds east of UTC, as for
// time.FixedZone). Only a time is required; the result carries the zero
// date, year 0 January 1.
func (v *DateTime) ResolveTime(fallbackOffset int) (time.Time, error) {
	clock, err := v.LocalTime()
	if err != nil {
		return time.Time{}, err
	}
	offset := fallbackOffset
	if v.offset != nil {
		offset = *v.offset
	}
	return time.Date(0, time.January, 1, clock.Hour, clock.Minute, clock.Second, clock.Nanosecond, fixedZone(offset)), nil
}

func fixedZone(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone(formatOffset(offsetSeconds), offsetSeconds)
}

// formatOffset renders seconds east of UTC as "Z", "+07:00", "-08:30", or
// "+05:45:30" when the offset is not a whole number of minutes.
func formatOffset(offsetSeconds int) string {
	if offsetSeconds == 0 {
		return "Z"
	}
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	s := fmt.Sprintf("%s%02d:%02d", sign, offsetSeconds/3600, offsetSeconds%3600/60)
	if offsetSeconds%60 != 0 {
		s += fmt.Sprintf(":%02d", offsetSeconds%60)
	}
	return s
}

// String renders the literal form the parser would accept back: the date,
// a T separator and the time when both are present, then the offset.
func (v *DateTime) String() string {
	var b strings.Builder
	if v.date != nil {
		b.WriteString(v.date.String())
	}
	if v.clock != nil {
		if v.date != nil {
			b.WriteByte('T')
		}
		b.WriteString(v.clock.String())
	}
	if v.offset != nil {
		b.WriteString(formatOffset(*v.offset))
	}
	return b.String()
}

func (v *DateTime) Untyped() any { return v.String() }

func (v *DateTime) JSON() string { return lenientJSON(v) }

func (v *DateTime) MarshalJSON() ([]byte, error) { return v.appendJSON(nil, true) }

func (v *DateTime) appendJSON(dst []byte, strict bool) ([]byte, error) {
	return appendQuoted(dst, v.String()), nil
}

// isDateTimeRune reports whether c may appear in a date-time literal after
// its leading digit.
func isDateTimeRune(c rune) bool {
	switch c {
	case '-', ':', '.', '+', 'T', 't', 'Z', 'z':
		return true
	}
	return c >= '0' && c <= '9'
}

// dateTimeShapes pairs each accepted literal layout with the components it
// carries. Order matters: the offset-qualified layouts must come before
// their local counterparts so the offset is not left dangling.
var dateTimeShapes = []struct {
	layout  string
	hasDate bool
	hasTime bool
	hasZone bool
}{
	{"2006-01-02T15:04:05.999999999Z07:00", true, true, true},
	{"2006-01-02T15:04:05.999999999", true, true, false},
	{"2006-01-02", true, false, false},
	{"15:04:05.999999999Z07:00", false, true, true},
	{"15:04:05.999999999", false, true, false},
}

// dateTimeAhead reports whether the digits at the cursor open a date
// ("YYYY-") or a time ("HH:") rather than a number.
func (lx *lexer) dateTimeAhead() bool {
	if !isDigit(lx.sc.peek(0)) {
		return false
	}
	if isDigit(lx.sc.peek(1)) && isDigit(lx.sc.peek(2)) && isDigit(lx.sc.peek(3)) && lx.sc.peek(4) == '-' {
		return true
	}
	return isDigit(lx.sc.peek(1)) && lx.sc.peek(2) == ':'
}

// parseDateTime lexes the date, time or date-time literal at the cursor.
// The whole literal run is taken first, then matched against the five
// accepted shapes; time.Parse supplies the range checking (month 13 and
// February 30 fail there).
func (lx *lexer) parseDateTime() (Value, error) {
	lx.skipWhitespace()
	startLoc := lx.sc.location()

	var raw strings.Builder
	for isDateTimeRune(lx.sc.peek(0)) {
		raw.WriteRune(lx.sc.peek(0))
		lx.sc.skip(1)
	}

	// the lowercase separators t and z are allowed in the input, but
	// time.Parse only knows the uppercase forms
	text := strings.Map(func(r rune) rune {
		switch r {
		case 't':
			return 'T'
		case 'z':
			return 'Z'
		}
		return r
	}, raw.String())

	for _, shape := range dateTimeShapes {
		t, err := time.Parse(shape.layout, text)
		if err != nil {
			continue
		}
		var date *LocalDate
		var clock *LocalTime
		var offset *int
		if shape.hasDate {
			date = &LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
		}
		if shape.hasTime {
			clock = &LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
		}
		if shape.hasZone {
			_, seconds := t.Zone()
			offset = &seconds
		}
		return newDateTime(date, clock, offset, &startLoc), nil
	}
	return nil, syntaxErrorf(startLoc, "invalid date-time literal %q", raw.String())
}
