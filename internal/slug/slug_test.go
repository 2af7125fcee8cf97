package slug

import "testing"

// TestMake exercises the slug generator with a broad range of inputs
// covering typical titles, special characters, unicode, edge cases, and
// boundary conditions.
func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Hello World 2026",
			want:  "hello-world-2026",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "single word",
			input: "GoLang",
			want:  "golang",
		},
		{
			name:  "mixed case sentence",
			input: "The Quick Brown Fox Jumps Over the Lazy Dog",
			want:  "the-quick-brown-fox-jumps-over-the-lazy-dog",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "parentheses and brackets",
			input: "Version (2.0) [Beta]",
			want:  "version-20-beta",
		},
		{
			name:  "existing hyphens survive",
			input: "pre-release build",
			want:  "pre-release-build",
		},
		{
			name:  "multiple hyphens collapse",
			input: "one -- two --- three",
			want:  "one-two-three",
		},

		// --- Diacritics ---
		{
			name:  "spanish accents",
			input: "Programación en Español",
			want:  "programacion-en-espanol",
		},
		{
			name:  "inverted punctuation",
			input: "¡Hola, Categoría! 2026",
			want:  "hola-categoria-2026",
		},
		{
			name:  "french accents",
			input: "Déjà vu à Noël",
			want:  "deja-vu-a-noel",
		},
		{
			name:  "german umlauts lose marks",
			input: "Über München",
			want:  "uber-munchen",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!! ??? ***",
			want:  "",
		},
		{
			name:  "leading and trailing spaces",
			input: "  padded title  ",
			want:  "padded-title",
		},
		{
			name:  "tabs and newlines",
			input: "line\none\tline two",
			want:  "line-one-line-two",
		},
		{
			name:  "digits only",
			input: "2026 08 29",
			want:  "2026-08-29",
		},
		{
			name:  "non latin script strips away",
			input: "日本語のタイトル",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.input, "es"); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestMakeLanguageIndependent verifies the language code does not change
// the output for Latin-script input.
func TestMakeLanguageIndependent(t *testing.T) {
	input := "Categoría General"
	es := Make(input, "es")
	en := Make(input, "en")
	if es != en {
		t.Errorf("Make differs by language: es=%q en=%q", es, en)
	}
}

func TestMakeOr(t *testing.T) {
	if got := MakeOr("Hello World", "en", "post"); got != "hello-world" {
		t.Errorf("MakeOr with slugifiable input = %q, want %q", got, "hello-world")
	}
	if got := MakeOr("¡¡¡", "es", "post"); got != "post" {
		t.Errorf("MakeOr with empty result = %q, want fallback %q", got, "post")
	}
	if got := MakeOr("", "es", "etiqueta"); got != "etiqueta" {
		t.Errorf("MakeOr with empty input = %q, want fallback %q", got, "etiqueta")
	}
}
