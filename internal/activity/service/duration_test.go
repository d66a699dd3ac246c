package service

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"minutes only", "14:00", "14:45", "45min"},
		{"whole hours", "10:00", "12:00", "2h"},
		{"hours and minutes", "09:30", "11:00", "1h 30min"},
		{"empty start", "", "12:00", ""},
		{"empty end", "10:00", "", ""},
		{"end before start", "15:00", "14:00", ""},
		{"zero duration", "14:00", "14:00", ""},
		{"garbage input", "abc", "def", ""},
		{"out of range clock", "25:00", "26:00", ""},
		{"whitespace trimmed", " 08:00 ", " 09:15 ", "1h 15min"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatDuration(tc.start, tc.end); got != tc.want {
				t.Fatalf("formatDuration(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
