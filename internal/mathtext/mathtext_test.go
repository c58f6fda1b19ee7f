package mathtext

import "testing"

func TestContainsMath(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"A ball is thrown upward", false},
		{"The velocity is $v = u + at$", true},
		{`Evaluate \(x^2\)`, true},
		{`Displayed: \[E = mc^2\]`, true},
		{`Use \frac{1}{2}mv^2`, true},
		{`The angle \theta is small`, true},
		{`a \times b`, true},
		{"price is 5 dollars", false},
	}

	for _, tt := range tests {
		if got := ContainsMath(tt.text); got != tt.want {
			t.Errorf("ContainsMath(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestRenderPassthrough(t *testing.T) {
	plain := "A particle moves with constant velocity 5 m/s"
	if got := Render(plain); got != plain {
		t.Errorf("Render(%q) = %q, want unchanged", plain, got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inline delimiters stripped",
			in:   "speed $v = u + at$ here",
			want: "speed v = u + at here",
		},
		{
			name: "display delimiters stripped",
			in:   "$$E = mc^2$$",
			want: "E = mc²",
		},
		{
			name: "fraction flattened",
			in:   `KE = \frac{1}{2}mv^2`,
			want: "KE = (1)/(2)mv²",
		},
		{
			name: "sqrt",
			in:   `$t = \sqrt{2h/g}$`,
			want: "t = √(2h/g)",
		},
		{
			name: "greek and operators",
			in:   `\theta \approx \pi \times 2`,
			want: "θ ≈ π × 2",
		},
		{
			name: "negative exponent",
			in:   "$10^{-3}$ m",
			want: "10⁻³ m",
		},
		{
			name: "non-numeric exponent keeps caret",
			in:   "$e^{x}$",
			want: "e^x",
		},
		{
			name: "infinity not eaten by in",
			in:   `x \in [0, \infty)`,
			want: "x ∈ [0, ∞)",
		},
		{
			name: "unknown command degrades to its word",
			in:   `$\lambda = 2$`,
			want: "lambda = 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
