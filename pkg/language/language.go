// Package language maps user-facing locale codes to the identifiers the
// recognition and synthesis engines expect.
package language

// Locale binds the three representations of one supported language:
// the short user-facing code, the tesseract language pack name, and the
// speech-synthesis locale.
type Locale struct {
	Code        string
	Recognition string
	Synthesis   string
}

var (
	English = Locale{Code: "en", Recognition: "eng", Synthesis: "en"}
	Hindi   = Locale{Code: "hi", Recognition: "hin", Synthesis: "hi"}
	Marathi = Locale{Code: "mr", Recognition: "mar", Synthesis: "mr"}
)

var supported = []Locale{English, Hindi, Marathi}

// Normalize resolves a user-facing code to its Locale. Unknown codes,
// including the empty string, resolve to English rather than failing.
func Normalize(code string) Locale {
	for _, loc := range supported {
		if loc.Code == code {
			return loc
		}
	}
	return English
}

// Supported returns the locales the service accepts.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}
