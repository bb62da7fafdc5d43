package datemath_test

import (
	"testing"
	"time"

	"conversational-task-management/pkg/datemath"
)

func TestParse(t *testing.T) {
	parser := datemath.New(time.UTC)
	base := time.Date(2025, 12, 3, 15, 30, 0, 0, time.UTC) // Wednesday
	day := func(d int) time.Time {
		return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		phrase  string
		want    time.Time
		wantErr bool
	}{
		{name: "today russian", phrase: "сегодня", want: day(3)},
		{name: "tomorrow russian", phrase: "завтра", want: day(4)},
		{name: "day after tomorrow", phrase: "послезавтра", want: day(5)},
		{name: "tomorrow english", phrase: "tomorrow", want: day(4)},
		{name: "in three days", phrase: "через 3 дня", want: day(6)},
		{name: "in a week", phrase: "через неделю", want: day(10)},
		{name: "in two weeks english", phrase: "in 2 weeks", want: day(17)},
		{name: "in a month", phrase: "через месяц", want: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "next friday russian", phrase: "в пятницу", want: day(5)},
		{name: "same weekday rolls over", phrase: "в среду", want: day(10)},
		{name: "next monday english", phrase: "next monday", want: day(8)},
		{name: "uppercase with spaces", phrase: "  Завтра  ", want: day(4)},
		{name: "unknown phrase", phrase: "когда-нибудь", wantErr: true},
		{name: "empty", phrase: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.phrase, base)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.phrase, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestParseKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	parser := datemath.New(loc)
	base := time.Date(2025, 12, 3, 23, 30, 0, 0, time.UTC) // already Dec 4 in Moscow

	got, err := parser.Parse("завтра", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 12, 5, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Parse(завтра) = %v, want %v", got, want)
	}
}
