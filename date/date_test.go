package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "standard", in: "2024-01-15", want: New(2024, time.January, 15)},
		{name: "single digit month and day", in: "2024-1-5", want: New(2024, time.January, 5)},
		{name: "garbage", in: "not-a-date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "slashes are rejected", in: "2024/01/15", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected an error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	if got := MustParse("2024-1-5").MonthKey(); got != "2024-01" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-01")
	}
	if got := MustParse("2024-12-31").MonthKey(); got != "2024-12" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-12")
	}
}

func TestNewNormalizes(t *testing.T) {
	// Overflowing days roll into the next month, like time.Date.
	got := New(2024, time.January, 32)
	want := New(2024, time.February, 1)
	if got != want {
		t.Errorf("New(2024, January, 32) = %v, want %v", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := MustParse("2024-03-07")
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2024-03-07"` {
		t.Errorf("Marshal = %s, want %q", data, `"2024-03-07"`)
	}
	var out Date
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestBeforeAfterAdd(t *testing.T) {
	a := MustParse("2024-01-15")
	b := MustParse("2024-01-16")
	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is inconsistent for %v and %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After is inconsistent for %v and %v", a, b)
	}
	if a.Add(1) != b {
		t.Errorf("%v.Add(1) = %v, want %v", a, a.Add(1), b)
	}
}
