package trans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/lang"
)

// buildArticle builds a schema with a translatable "title" and a
// default-language override attribute.
func buildArticle(t *testing.T, settings *lang.Settings) *core.Schema {
	t.Helper()
	decl := &TypeDecl{
		Name: "article",
		Fields: []*core.FieldDecl{
			{Name: "title", Type: core.FieldString, Required: true, MaxLength: 200},
			{Name: "default_lang", Type: core.FieldString, MaxLength: 5},
		},
		Translate:            []string{"title"},
		DefaultLanguageField: "default_lang",
	}
	schema, err := Build(decl, settings)
	require.NoError(t, err)
	return schema
}

func TestAccessor_RoundTrip(t *testing.T) {
	settings := testSettings("en")
	rec := buildArticle(t, settings).NewRecord()

	assert.True(t, rec.Set("title", "Hello"))

	got, ok := rec.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello", got)

	// The write landed in the active language's concrete field
	v, ok := rec.Attr("title_en")
	require.True(t, ok)
	assert.Equal(t, "Hello", v)
}

func TestAccessor_UnsupportedActiveFallsThrough(t *testing.T) {
	// Active language "es" is not configured; en (fallback) is unset.
	// fr holds a value but is not on the resolution chain, so the read
	// comes back empty rather than erroring.
	settings := testSettings("es")
	rec := buildArticle(t, settings).NewRecord()
	rec.SetAttr("title_fr", "Bonjour")

	got, ok := rec.Get("title")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestAccessor_PrimarySubtagMatch(t *testing.T) {
	// Active fr-ca, its own field unset: the primary subtag fr is
	// consulted next.
	settings := testSettings("fr-ca")
	rec := buildArticle(t, settings).NewRecord()
	rec.SetAttr("title_fr", "Bonjour")

	got, ok := rec.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", got)
}

func TestAccessor_FallbackLanguageValue(t *testing.T) {
	settings := testSettings("fr")
	rec := buildArticle(t, settings).NewRecord()
	rec.SetAttr("title_en", "Hello")

	got, ok := rec.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello", got, "fallback language value is the last resort")
}

func TestAccessor_RecordDefaultLanguageOverride(t *testing.T) {
	// Active language unsupported, en unset, record-level default says fr.
	settings := testSettings("es")
	rec := buildArticle(t, settings).NewRecord()
	rec.SetAttr("default_lang", "fr")
	rec.SetAttr("title_fr", "Salut")

	got, ok := rec.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Salut", got)
}

func TestAccessor_RecordDefaultPrimarySubtag(t *testing.T) {
	// Record default is fr-ca with its field unset; the default's
	// primary subtag fr is consulted before giving up.
	settings := testSettings("es")
	rec := buildArticle(t, settings).NewRecord()
	rec.SetAttr("default_lang", "fr-ca")
	rec.SetAttr("title_fr", "Salut")

	got, ok := rec.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Salut", got)
}

func TestAccessor_EmptyStringIsAbsent(t *testing.T) {
	settings := testSettings("fr")
	rec := buildArticle(t, settings).NewRecord()
	rec.SetAttr("title_fr", "")
	rec.SetAttr("title_en", "Hello")

	got, ok := rec.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello", got, "empty string does not satisfy resolution")
}

func TestAccessor_AssignPicksFirstExistingField(t *testing.T) {
	// Writes are routed by field existence, not value emptiness: with an
	// unsupported active language the fallback language's field exists
	// and receives the value.
	settings := testSettings("es")
	rec := buildArticle(t, settings).NewRecord()

	assert.True(t, rec.Set("title", "Hola"))

	v, ok := rec.Attr("title_en")
	require.True(t, ok)
	assert.Equal(t, "Hola", v)
}

func TestAccessor_AssignHonorsRecordDefault(t *testing.T) {
	// Record default fr routes the write to title_fr when the active
	// language has no concrete field.
	settings := testSettings("es")
	schema := buildArticle(t, settings)
	rec := schema.NewRecord()
	rec.SetAttr("default_lang", "fr")

	assert.True(t, rec.Set("title", "Salut"))

	v, ok := rec.Attr("title_fr")
	require.True(t, ok)
	assert.Equal(t, "Salut", v)
	_, ok = rec.Attr("title_en")
	assert.False(t, ok, "fallback field must not be written when an earlier chain member exists")
}

func TestAccessor_AssignWithoutTargetReportsDiscard(t *testing.T) {
	// An accessor over a schema that carries none of the concrete fields
	// has nowhere to write; the assignment reports false instead of
	// erroring.
	settings := testSettings("es")
	schema := core.NewSchema("bare")
	acc := NewAccessor("title", settings)

	rec := schema.NewRecord()
	assert.False(t, acc.Assign(rec, "lost"))
	assert.Empty(t, rec.Attrs())
}

func TestAccessor_ResolveInExplicitLanguage(t *testing.T) {
	settings := testSettings("en")
	schema := buildArticle(t, settings)
	rec := schema.NewRecord()
	rec.SetAttr("title_fr", "Bonjour")
	rec.SetAttr("title_en", "Hello")

	accIface, ok := schema.Accessor("title")
	require.True(t, ok)
	acc, ok := accIface.(*Accessor)
	require.True(t, ok)
	assert.Equal(t, "title", acc.Canonical())

	got, ok := acc.ResolveIn(rec, "fr")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", got)

	got, ok = acc.ResolveIn(rec, "en")
	require.True(t, ok)
	assert.Equal(t, "Hello", got)
}
