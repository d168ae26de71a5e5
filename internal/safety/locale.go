package safety

import "strings"

// vietnameseDiacritics are code points specific to Vietnamese
// orthography; plain Latin text never contains them.
const vietnameseDiacritics = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ" +
	"ÀÁẠẢÃÂẦẤẬẨẪĂẰẮẶẲẴÈÉẸẺẼÊỀẾỆỂỄÌÍỊỈĨÒÓỌỎÕÔỒỐỘỔỖƠỜỚỢỞỠÙÚỤỦŨƯỪỨỰỬỮỲÝỴỶỸĐ"

// englishHints are common English words used to confirm the locale when
// the ASCII ratio alone is borderline.
var englishHints = []string{
	"the ", " is ", " are ", " you ", " what", " how ", " can ", "please", "hello",
}

// DetectLocale infers the reply language from the text. It is purely a
// rendering concern and never influences classification.
func DetectLocale(text string) Locale {
	if text == "" {
		return LocaleVI
	}

	ratio := asciiRatio(text)
	hasDiacritics := strings.ContainsAny(text, vietnameseDiacritics)

	switch {
	case hasDiacritics && ratio < 0.7:
		return LocaleVI
	case ratio > 0.8 && containsAny(strings.ToLower(text), englishHints):
		return LocaleEN
	case ratio > 0.9:
		return LocaleEN
	default:
		return LocaleVI
	}
}

func asciiRatio(text string) float64 {
	total, ascii := 0, 0
	for _, r := range text {
		total++
		if r < 128 {
			ascii++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(ascii) / float64(total)
}
