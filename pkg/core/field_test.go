package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDecl_Clone(t *testing.T) {
	orig := &FieldDecl{
		Name:      "status",
		Type:      FieldString,
		Nullable:  true,
		MaxLength: 10,
		Choices:   []Choice{{Value: "a", Label: "A"}},
		Meta:      map[string]any{"help": "pick one"},
	}

	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.Choices[0].Value = "changed"
	clone.Meta["help"] = "changed"
	assert.Equal(t, "a", orig.Choices[0].Value, "clone must not share the choices slice")
	assert.Equal(t, "pick one", orig.Meta["help"], "clone must not share the meta map")
}

func TestFieldDecl_CanonicalName(t *testing.T) {
	logical := &FieldDecl{Name: "title"}
	assert.Equal(t, "title", logical.CanonicalName())

	concrete := &FieldDecl{Name: "title_en", Canonical: "title"}
	assert.Equal(t, "title", concrete.CanonicalName())
}
