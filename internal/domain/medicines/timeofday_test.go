package medicines

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay_AcceptedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"08:00", TimeOfDay{8, 0}},
		{"8:00", TimeOfDay{8, 0}},
		{"23:59", TimeOfDay{23, 59}},
		{"0:05", TimeOfDay{0, 5}},
		{"08:00 AM", TimeOfDay{8, 0}},
		{"08:00 pm", TimeOfDay{20, 0}},
		{"8:30pm", TimeOfDay{20, 30}},
		{"12:00 AM", TimeOfDay{0, 0}},
		{"12:00 PM", TimeOfDay{12, 0}},
		{"3 PM", TimeOfDay{15, 0}},
		{"3pm", TimeOfDay{15, 0}},
		{"  9:15  ", TimeOfDay{9, 15}},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeOfDay_Rejected(t *testing.T) {
	// Nada de defaults silenciosos: lo que no está en la allow-list, falla.
	cases := []string{
		"",
		"   ",
		"8",
		"25:00",
		"08:60",
		"mediodía",
		"08-00",
		"8:00 XM",
		"tomorrow",
	}

	for _, in := range cases {
		if _, err := ParseTimeOfDay(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseTimeOfDay(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestTimeOfDay_On(t *testing.T) {
	ref := time.Date(2025, 3, 10, 22, 45, 12, 0, time.Local)
	got := TimeOfDay{8, 30}.On(ref)
	want := time.Date(2025, 3, 10, 8, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("On() = %v, want %v", got, want)
	}
}

func TestTimeOfDay_JSONRoundTrip(t *testing.T) {
	td := TimeOfDay{8, 5}
	b, err := td.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"08:05"` {
		t.Fatalf("marshal = %s, want \"08:05\"", b)
	}

	var back TimeOfDay
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != td {
		t.Fatalf("round trip = %v, want %v", back, td)
	}
}
