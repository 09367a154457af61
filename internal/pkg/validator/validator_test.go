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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0190b0a2-7c3e-7d4b-8a9e-1f2d3c4b5a69",
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	}
	invalid := []string{"", "not-a-uuid", "6ba7b8109dad11d180b400c04fd430c8", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"}
	for _, s := range valid {
		if !IsValidUUID(s) {
			t.Errorf("IsValidUUID(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidUUID(s) {
			t.Errorf("IsValidUUID(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Error("IsValidDate(2025-02-28) = false, want true")
	}
	for _, s := range []string{"2025-02-30", "28-02-2025", "2025/02/28", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	for _, s := range []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123456Z"} {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"2024-01-15", "2024-01-15 10:30:00", ""} {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"08:00", true},
		{"23:59", true},
		{"00:00", true},
		{"24:00", false},
		{"8:00", false},
		{"08:60", false},
		{"0800", false},
	}
	for _, c := range cases {
		if got := IsValidClock(c.input); got != c.want {
			t.Errorf("IsValidClock(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestCoordinates(t *testing.T) {
	if !IsValidLatitude(-6.2) || IsValidLatitude(91) || IsValidLatitude(-90.5) {
		t.Error("IsValidLatitude range check failed")
	}
	if !IsValidLongitude(106.8) || IsValidLongitude(180.1) || IsValidLongitude(-181) {
		t.Error("IsValidLongitude range check failed")
	}
}

func TestIsValidTimezone(t *testing.T) {
	if !IsValidTimezone("UTC") {
		t.Error("IsValidTimezone(UTC) = false, want true")
	}
	if IsValidTimezone("Mars/Olympus") || IsValidTimezone("") {
		t.Error("IsValidTimezone accepted an unknown zone")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"annual", "sick", "other"}
	if !IsInSlice("sick", slice) {
		t.Error("IsInSlice(sick) = false, want true")
	}
	if IsInSlice("unpaid", slice) {
		t.Error("IsInSlice(unpaid) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude is required"},
		{Field: "type", Message: "type must be one of: in, out"},
	}
	if errs.Error() != "latitude: latitude is required; type: type must be one of: in, out" {
		t.Errorf("unexpected Error(): %s", errs.Error())
	}
	m := errs.ToMap()
	if len(m) != 2 || m["type"] != "type must be one of: in, out" {
		t.Errorf("unexpected ToMap(): %v", m)
	}
}
