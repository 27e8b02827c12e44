package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name            string
		code            string
		wantRecognition string
		wantSynthesis   string
	}{
		{name: "english", code: "en", wantRecognition: "eng", wantSynthesis: "en"},
		{name: "hindi", code: "hi", wantRecognition: "hin", wantSynthesis: "hi"},
		{name: "marathi", code: "mr", wantRecognition: "mar", wantSynthesis: "mr"},
		{name: "unknown code falls back to english", code: "fr", wantRecognition: "eng", wantSynthesis: "en"},
		{name: "empty code falls back to english", code: "", wantRecognition: "eng", wantSynthesis: "en"},
		{name: "recognition code is not a user code", code: "eng", wantRecognition: "eng", wantSynthesis: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Normalize(tt.code)
			assert.Equal(t, tt.wantRecognition, loc.Recognition)
			assert.Equal(t, tt.wantSynthesis, loc.Synthesis)
		})
	}
}

func TestSupportedPairsAreUnique(t *testing.T) {
	recognition := make(map[string]string)
	for _, loc := range Supported() {
		prev, seen := recognition[loc.Recognition]
		assert.False(t, seen, "recognition code %q mapped twice (%q and %q)", loc.Recognition, prev, loc.Synthesis)
		recognition[loc.Recognition] = loc.Synthesis
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	locales := Supported()
	locales[0] = Locale{Code: "xx"}
	assert.Equal(t, "en", Supported()[0].Code)
}
