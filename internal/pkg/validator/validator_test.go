package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"8:00", "08:00", "0:00", "23:59", "19:05"}
	invalid := []string{"24:00", "8:60", "08:0", "0800", "8h00", "", "08:00:00", "-1:00"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidWeekday(t *testing.T) {
	if !IsValidWeekday("monday") || !IsValidWeekday("Sunday") {
		t.Errorf("expected weekday names to be accepted")
	}
	if IsValidWeekday("funday") {
		t.Errorf("IsValidWeekday(%q) = true, want false", "funday")
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Fatalf("empty ValidationErrors should be nil error")
	}
	errs.Add("clock_in", "clock_in is required")
	errs.Add("date", "date must be in YYYY-MM-DD format")

	if got := errs.Error(); got != "clock_in: clock_in is required; date: date must be in YYYY-MM-DD format" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["clock_in"] != "clock_in is required" {
		t.Errorf("ToMap()[clock_in] = %q", m["clock_in"])
	}
}
