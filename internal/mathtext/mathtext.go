// Package mathtext prepares question text containing LaTeX fragments
// for display in a terminal. There is no real math renderer here: the
// goal is readable plain text, so delimiters are stripped and the
// common commands are mapped to unicode equivalents.
package mathtext

import (
	"regexp"
	"strings"
)

// latexCommands are the commands whose presence marks a string as
// containing math, checked after the delimiter scan.
var latexCommands = []string{
	`\frac`, `\sqrt`, `\sum`, `\int`, `\prod`,
	`\alpha`, `\beta`, `\gamma`, `\delta`, `\theta`,
	`\pi`, `\sigma`, `\omega`, `\infty`, `\partial`,
	`\nabla`, `\times`, `\cdot`, `\div`, `\approx`,
	`\neq`, `\geq`, `\leq`, `\in`, `\subset`,
}

// ContainsMath reports whether text carries LaTeX delimiters or any of
// the recognized commands.
func ContainsMath(text string) bool {
	if text == "" {
		return false
	}
	for _, d := range []string{"$", `\(`, `\)`, `\[`, `\]`} {
		if strings.Contains(text, d) {
			return true
		}
	}
	for _, c := range latexCommands {
		if strings.Contains(text, c) {
			return true
		}
	}
	return false
}

// unicodeReplacer maps the commands with a direct unicode equivalent.
// Longer commands come first so \infty and \int win over \in.
var unicodeReplacer = strings.NewReplacer(
	`\approx`, "≈",
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\delta`, "δ",
	`\theta`, "θ",
	`\sigma`, "σ",
	`\omega`, "ω",
	`\infty`, "∞",
	`\partial`, "∂",
	`\nabla`, "∇",
	`\times`, "×",
	`\cdot`, "·",
	`\div`, "÷",
	`\neq`, "≠",
	`\geq`, "≥",
	`\leq`, "≤",
	`\subset`, "⊂",
	`\sum`, "Σ",
	`\int`, "∫",
	`\prod`, "Π",
	`\pi`, "π",
	`\in`, "∈",
	`\pm`, "±",
	`\degree`, "°",
	`\circ`, "°",
)

var (
	fracRe    = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtRe    = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	supRe     = regexp.MustCompile(`\^\{([^{}]*)\}`)
	subRe     = regexp.MustCompile(`_\{([^{}]*)\}`)
	textRe    = regexp.MustCompile(`\\(?:text|mathrm)\{([^{}]*)\}`)
	displayRe = regexp.MustCompile(`\$\$(.*?)\$\$`)
	inlineRe  = regexp.MustCompile(`\$(.*?)\$`)
	cmdRe     = regexp.MustCompile(`\\[a-zA-Z]+`)
)

// superscripts maps the digits and signs with superscript forms.
var superscripts = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
	"-", "⁻", "+", "⁺",
)

// Render converts text to a terminal-friendly form: delimiters removed,
// known commands mapped to unicode, fractions flattened to a/b. Text
// without math passes through unchanged.
func Render(text string) string {
	if !ContainsMath(text) {
		return text
	}

	out := text

	// Strip delimiters, keeping the contents.
	out = displayRe.ReplaceAllString(out, "$1")
	out = inlineRe.ReplaceAllString(out, "$1")
	out = strings.NewReplacer(`\(`, "", `\)`, "", `\[`, "", `\]`, "").Replace(out)

	// Structural commands before plain substitutions.
	out = fracRe.ReplaceAllString(out, "($1)/($2)")
	out = sqrtRe.ReplaceAllString(out, "√($1)")
	out = strings.ReplaceAll(out, `\sqrt`, "√")
	out = textRe.ReplaceAllString(out, "$1")

	out = unicodeReplacer.Replace(out)

	// Exponents: ^{10} and ^2 both read fine as superscripts.
	out = supRe.ReplaceAllStringFunc(out, func(m string) string {
		inner := supRe.FindStringSubmatch(m)[1]
		return toSuperscript(inner)
	})
	out = subRe.ReplaceAllString(out, "_$1")
	out = replaceBareSuperscripts(out)

	// Whatever commands remain, drop the backslash so the word shows.
	out = cmdRe.ReplaceAllStringFunc(out, func(m string) string {
		return strings.TrimPrefix(m, `\`)
	})

	out = strings.NewReplacer("{", "", "}", "").Replace(out)
	return strings.Join(strings.Fields(out), " ")
}

// toSuperscript converts s to superscript characters when every rune
// has a superscript form, else falls back to caret notation.
func toSuperscript(s string) string {
	for _, r := range s {
		if !strings.ContainsRune("0123456789-+", r) {
			return "^" + s
		}
	}
	return superscripts.Replace(s)
}

var bareSupRe = regexp.MustCompile(`\^(-?\d+)`)

func replaceBareSuperscripts(s string) string {
	return bareSupRe.ReplaceAllStringFunc(s, func(m string) string {
		return superscripts.Replace(strings.TrimPrefix(m, "^"))
	})
}
