package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossa-labs/transfield/internal/testutil"
	"github.com/glossa-labs/transfield/pkg/core"
	"github.com/glossa-labs/transfield/pkg/lang"
	"github.com/glossa-labs/transfield/pkg/trans"
)

func testSettings() *lang.Settings {
	return &lang.Settings{
		Languages: []lang.Language{
			{Code: "en", Name: "English"},
			{Code: "fr", Name: "French"},
		},
		Fallback: "en",
	}
}

func articleSchema(t *testing.T) *core.Schema {
	t.Helper()
	schema, err := trans.Build(&trans.TypeDecl{
		Name: "article",
		Fields: []*core.FieldDecl{
			{Name: "title", Type: core.FieldString, MaxLength: 200},
			{Name: "views", Type: core.FieldInt, Nullable: true},
			{Name: "default_lang", Type: core.FieldString, Nullable: true},
		},
		Translate:            []string{"title"},
		DefaultLanguageField: "default_lang",
	}, testSettings())
	require.NoError(t, err)
	return schema
}

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	schema := articleSchema(t)
	require.NoError(t, store.InitSchema(ctx, schema))
	// InitSchema is idempotent
	require.NoError(t, store.InitSchema(ctx, schema))

	rec := schema.NewRecord()
	require.True(t, rec.Set("title", "Hello")) // lands in title_en via the accessor
	rec.SetAttr("title_fr", "Bonjour")
	rec.SetAttr("views", int64(7))

	id, err := store.SaveRecord(ctx, rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := store.GetRecord(ctx, schema, id)
	require.NoError(t, err)
	assert.Equal(t, id, loaded.ID)

	got, ok := loaded.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello", got)

	fr, ok := loaded.Attr("title_fr")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", fr)

	views, ok := loaded.Attr("views")
	require.True(t, ok)
	assert.Equal(t, int64(7), views)

	// Unset nullable columns stay unset after the round trip
	_, ok = loaded.Attr("default_lang")
	assert.False(t, ok)
}

func TestSQLiteStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	schema := articleSchema(t)
	require.NoError(t, store.InitSchema(ctx, schema))

	first := schema.NewRecord()
	first.SetAttr("title_en", "One")
	second := schema.NewRecord()
	second.SetAttr("title_en", "Two")

	firstID, err := store.SaveRecord(ctx, first)
	require.NoError(t, err)
	_, err = store.SaveRecord(ctx, second)
	require.NoError(t, err)

	records, err := store.ListRecords(ctx, schema)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, store.DeleteRecord(ctx, schema, firstID))

	records, err = store.ListRecords(ctx, schema)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStore_UpdateRecord(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	schema := articleSchema(t)
	require.NoError(t, store.InitSchema(ctx, schema))

	rec := schema.NewRecord()
	rec.SetAttr("title_en", "Hello")
	id, err := store.SaveRecord(ctx, rec)
	require.NoError(t, err)

	rec.SetAttr("title_fr", "Bonjour")
	require.NoError(t, store.UpdateRecord(ctx, rec))

	loaded, err := store.GetRecord(ctx, schema, id)
	require.NoError(t, err)
	fr, ok := loaded.Attr("title_fr")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", fr)

	// An update that violates the preserved fallback constraint fails
	// and leaves the stored row as it was.
	broken := schema.NewRecord()
	broken.ID = id
	broken.SetAttr("title_fr", "Salut")
	require.Error(t, store.UpdateRecord(ctx, broken))

	loaded, err = store.GetRecord(ctx, schema, id)
	require.NoError(t, err)
	en, ok := loaded.Attr("title_en")
	require.True(t, ok)
	assert.Equal(t, "Hello", en)

	// Unknown ids are reported, not silently ignored
	ghost := schema.NewRecord()
	ghost.ID = "missing"
	ghost.SetAttr("title_en", "x")
	var nfErr *RecordNotFoundError
	require.ErrorAs(t, store.UpdateRecord(ctx, ghost), &nfErr)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	schema := articleSchema(t)
	require.NoError(t, store.InitSchema(ctx, schema))

	_, err := store.GetRecord(ctx, schema, "missing")
	var nfErr *RecordNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "missing", nfErr.ID)

	err = store.DeleteRecord(ctx, schema, "missing")
	assert.ErrorAs(t, err, &nfErr)
}

func TestSQLiteStore_FallbackConstraintEnforced(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	schema := articleSchema(t)
	require.NoError(t, store.InitSchema(ctx, schema))

	// title_en keeps the original non-nullable constraint; saving a
	// record without it must fail at the database.
	rec := schema.NewRecord()
	rec.SetAttr("title_fr", "Bonjour")

	_, err := store.SaveRecord(ctx, rec)
	assert.Error(t, err)
}
