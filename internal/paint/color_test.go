package paint

import "testing"

func TestRGB_Clamps(t *testing.T) {
	if got := RGB(-4, 300, 128); got != (Color{R: 0, G: 255, B: 128}) {
		t.Errorf("RGB = %v, want {0 255 128}", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#060b14", RGB(6, 11, 20), false},
		{"c04e01", RGB(192, 78, 1), false},
		{" #D8DADB ", RGB(216, 218, 219), false},
		{"#fff", Color{}, true},
		{"#zzzzzz", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB(244, 229, 196)
	if got := c.Hex(); got != "#f4e5c4" {
		t.Errorf("Hex = %q, want #f4e5c4", got)
	}
}

func TestScaleAlpha(t *testing.T) {
	if got := ScaleAlpha(255, 0.9); got != 229 {
		t.Errorf("ScaleAlpha(255, 0.9) = %d, want 229", got)
	}
	if got := ScaleAlpha(45, 2); got != 90 {
		t.Errorf("ScaleAlpha(45, 2) = %d, want 90", got)
	}
	if got := ScaleAlpha(200, 10); got != 255 {
		t.Errorf("ScaleAlpha(200, 10) = %d, want 255", got)
	}
}
