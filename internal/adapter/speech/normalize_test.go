package speech

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"page citations removed",
			"Osmosis moves water (Page 12) across membranes (Pages 13, 14).",
			"Osmosis moves water across membranes .",
		},
		{
			"markdown stripped",
			"**Osmosis** is *diffusion* of `water`.",
			"Osmosis is diffusion of water.",
		},
		{
			"headings stripped",
			"## Summary\nWater moves.",
			"Summary Water moves.",
		},
		{
			"list markers stripped",
			"- first point\n- second point",
			"first point second point",
		},
		{
			"powers spoken",
			"E = mc^2",
			"E equals mc squared",
		},
		{
			"fractions spoken",
			`The rate is \frac{distance}{time} here.`,
			"The rate is distance divided by time here.",
		},
		{
			"symbols spoken",
			"x > y",
			"x is greater than y",
		},
		{
			"whitespace collapsed",
			"Too   many\n\n\nspaces.",
			"Too many spaces.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeBlankInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n"} {
		if got := Normalize(in); got != "" {
			t.Errorf("Normalize(%q) = %q, want empty", in, got)
		}
	}
}

func TestNormalizeKeepsProse(t *testing.T) {
	in := "Photosynthesis converts light energy into chemical energy in plants."
	if got := Normalize(in); got != in {
		t.Errorf("plain prose changed: %q", got)
	}
}

func TestNormalizeDollarMath(t *testing.T) {
	got := Normalize("The force is $F$ in newtons.")
	if !strings.Contains(got, "F") || strings.Contains(got, "$") {
		t.Errorf("dollar math not unwrapped: %q", got)
	}
}
