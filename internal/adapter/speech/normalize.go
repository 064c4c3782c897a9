package speech

import (
	"regexp"
	"strings"
)

var (
	pageCitation    = regexp.MustCompile(`\(Pages?\s*[\d,\-\s]+\)`)
	bracketCitation = regexp.MustCompile(`\[[^\]]*Pages?\s*[\d,\-\s]+\]`)
	latexInline     = regexp.MustCompile(`\\\((.*?)\\\)`)
	latexDisplay    = regexp.MustCompile(`\\\[(.*?)\\\]`)
	dollarMath      = regexp.MustCompile(`\$(.*?)\$`)
	latexFrac       = regexp.MustCompile(`\\frac\{(.*?)\}\{(.*?)\}`)
	caretPower      = regexp.MustCompile(`\^(\w)`)
	mdBold          = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic        = regexp.MustCompile(`\*(.*?)\*`)
	mdCode          = regexp.MustCompile("`(.*?)`")
	mdHeading       = regexp.MustCompile(`#{1,6}\s*`)
	listMarker      = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

var symbolSpeech = strings.NewReplacer(
	"^2", " squared",
	"^3", " cubed",
	"=", " equals ",
	"×", " multiplied by ",
	"÷", " divided by ",
	"≈", " approximately equals ",
	"≠", " is not equal to ",
	"≥", " is greater than or equal to ",
	"≤", " is less than or equal to ",
	">", " is greater than ",
	"<", " is less than ",
	"∞", " infinity ",
	"π", " pi ",
	"Ω", " ohms ",
	"•", "",
	"—", " ",
)

// Normalize strips markdown, page citations, and math notation from
// answer text so it reads naturally when spoken.
func Normalize(text string) string {
	text = pageCitation.ReplaceAllString(text, "")
	text = bracketCitation.ReplaceAllString(text, "")

	text = latexInline.ReplaceAllString(text, "$1")
	text = latexDisplay.ReplaceAllString(text, "$1")
	text = dollarMath.ReplaceAllString(text, "$1")
	text = latexFrac.ReplaceAllString(text, "$1 divided by $2")
	text = strings.ReplaceAll(text, "\\", "")

	text = symbolSpeech.Replace(text)
	text = caretPower.ReplaceAllString(text, " to the power $1")

	text = mdBold.ReplaceAllString(text, "$1")
	text = mdItalic.ReplaceAllString(text, "$1")
	text = mdCode.ReplaceAllString(text, "$1")
	text = mdHeading.ReplaceAllString(text, "")
	text = listMarker.ReplaceAllString(text, "")

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
