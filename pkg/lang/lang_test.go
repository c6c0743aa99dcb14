package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldName(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		code      Code
		want      string
	}{
		{
			name:      "plain code",
			canonical: "title",
			code:      "en",
			want:      "title_en",
		},
		{
			name:      "region code gets normalized",
			canonical: "title",
			code:      "en-us",
			want:      "title_en_us",
		},
		{
			name:      "canonical name containing underscores",
			canonical: "short_description",
			code:      "fr-ca",
			want:      "short_description_fr_ca",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldName(tt.canonical, tt.code))
		})
	}
}

func TestCode_Primary(t *testing.T) {
	tests := []struct {
		code Code
		want Code
	}{
		{"en", "en"},
		{"fr-ca", "fr"},
		{"zh-hans-cn", "zh"}, // single truncation at first separator
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.Primary(), "Primary(%q)", tt.code)
	}
}

func TestSettings_Validate(t *testing.T) {
	valid := func() *Settings {
		return &Settings{
			Languages: []Language{
				{Code: "en", Name: "English"},
				{Code: "fr", Name: "French"},
			},
			Fallback: "en",
		}
	}

	t.Run("valid settings", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("no languages", func(t *testing.T) {
		s := &Settings{Fallback: "en"}
		assert.Error(t, s.Validate())
	})

	t.Run("duplicate code", func(t *testing.T) {
		s := valid()
		s.Languages = append(s.Languages, Language{Code: "en", Name: "English again"})
		assert.Error(t, s.Validate())
	})

	t.Run("malformed code", func(t *testing.T) {
		s := valid()
		s.Languages = append(s.Languages, Language{Code: "not a language", Name: "Nope"})
		assert.Error(t, s.Validate())
	})

	t.Run("fallback not configured", func(t *testing.T) {
		s := valid()
		s.Fallback = "de"
		assert.Error(t, s.Validate())
	})

	t.Run("empty fallback", func(t *testing.T) {
		s := valid()
		s.Fallback = ""
		assert.Error(t, s.Validate())
	})
}

func TestSettings_ActiveCode(t *testing.T) {
	s := &Settings{
		Languages: []Language{{Code: "en"}, {Code: "fr"}},
		Fallback:  "en",
	}

	// No active function configured: fallback wins
	assert.Equal(t, Code("en"), s.ActiveCode())

	s.Active = func() Code { return "fr" }
	assert.Equal(t, Code("fr"), s.ActiveCode())

	// Active function returning nothing falls back
	s.Active = func() Code { return "" }
	assert.Equal(t, Code("en"), s.ActiveCode())
}

func TestSettings_Supports(t *testing.T) {
	s := &Settings{
		Languages: []Language{{Code: "en"}, {Code: "fr-ca"}},
		Fallback:  "en",
	}

	assert.True(t, s.Supports("en"))
	assert.True(t, s.Supports("fr-ca"))
	assert.False(t, s.Supports("es"))

	assert.Equal(t, []Code{"en", "fr-ca"}, s.Codes())
}

func TestSettings_FieldNames(t *testing.T) {
	s := &Settings{
		Languages: []Language{{Code: "en"}, {Code: "fr-ca"}},
		Fallback:  "en",
	}

	assert.Equal(t, []string{"title_en", "title_fr_ca"}, s.FieldNames("title"))
	assert.Equal(t, "title_en", s.FallbackFieldName("title"))
}
