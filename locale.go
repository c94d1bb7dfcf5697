package multicurvas

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale selects the decimal separator for numeric literals.
type Locale int

const (
	// Point uses a decimal point: 3.14.
	Point Locale = iota
	// Comma uses a decimal comma: 3,14.
	Comma
)

// Mark returns the decimal marker of the locale.
func (l Locale) Mark() rune {
	if l == Comma {
		return ','
	}
	return '.'
}

func (l Locale) String() string {
	if l == Comma {
		return "comma"
	}
	return "point"
}

// commaBases lists languages whose usual decimal separator is a comma.
var commaBases = map[string]bool{
	"af": true, "az": true, "be": true, "bg": true, "bs": true, "ca": true,
	"cs": true, "da": true, "de": true, "el": true, "es": true, "et": true,
	"eu": true, "fi": true, "fr": true, "gl": true, "hr": true, "hu": true,
	"hy": true, "id": true, "is": true, "it": true, "ka": true, "kk": true,
	"ky": true, "lt": true, "lv": true, "mk": true, "mn": true, "nb": true,
	"nl": true, "nn": true, "no": true, "pl": true, "pt": true, "ro": true,
	"ru": true, "sk": true, "sl": true, "sq": true, "sr": true, "sv": true,
	"tr": true, "uk": true, "uz": true, "vi": true,
}

// LocaleForTag returns the decimal convention of a language.
func LocaleForTag(tag language.Tag) Locale {
	base, conf := tag.Base()
	if conf == language.No {
		return Point
	}
	if commaBases[base.String()] {
		return Comma
	}
	return Point
}

// ParseLocale interprets a locale name. It accepts "point", "comma", ".",
// ",", BCP 47 tags such as "pt-BR", and POSIX locale names such as
// "de_DE.UTF-8".
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "point", ".", "c", "posix":
		return Point, nil
	case "comma", ",":
		return Comma, nil
	}
	// Strip the codeset and modifier of POSIX names.
	if k := strings.IndexAny(s, ".@"); k >= 0 {
		s = s[:k]
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return Point, fmt.Errorf("unknown locale %q: %w", s, err)
	}
	return LocaleForTag(tag), nil
}
