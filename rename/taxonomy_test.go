package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := DefaultTaxonomy()
	require.Len(t, tax.Fields, len(FieldOrder))

	for i, key := range FieldOrder {
		assert.Equal(t, key, tax.Fields[i].Key, "catalog order matches build order")
	}

	class, ok := tax.Field(FieldClass)
	require.True(t, ok)
	assert.True(t, class.FixedChoice())
	assert.True(t, class.HasOption("DWG"))
	assert.False(t, class.HasOption("NOPE"))

	client, ok := tax.Field(FieldClient)
	require.True(t, ok)
	assert.False(t, client.FixedChoice())

	_, ok = tax.Field("bogus")
	assert.False(t, ok)
}

func TestEnsureAndLoadTaxonomyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "taxonomy.yaml")
	require.NoError(t, EnsureTaxonomyFile(path))

	// Second ensure is a no-op on an existing file.
	require.NoError(t, EnsureTaxonomyFile(path))

	tax, err := LoadTaxonomyFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTaxonomy(), tax)
}

func TestLoadTaxonomyFileMissingFallsBack(t *testing.T) {
	tax, err := LoadTaxonomyFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTaxonomy(), tax)
}

func TestLoadTaxonomyFileValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "fields:\n  - key: severity\n    label: Severity\n"},
		{"duplicate key", "fields:\n  - key: class\n    label: A\n  - key: class\n    label: B\n"},
		{"blank option code", "fields:\n  - key: class\n    label: Class\n    options:\n      - code: \"\"\n        description: empty\n"},
		{"no fields", "fields: []\n"},
		{"missing fields", "fields:\n  - key: class\n    label: Class\n  - key: date\n    label: Date\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxonomy.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := LoadTaxonomyFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadTaxonomyFileCustomCatalog(t *testing.T) {
	custom := "fields:\n" +
		"  - key: class\n    label: Class\n    options:\n" +
		"      - code: DWG\n        description: Drawing\n" +
		"  - key: rev\n    label: Revision\n    options:\n" +
		"      - code: R01\n        description: First issue\n" +
		"  - key: ver\n    label: Version\n" +
		"  - key: spec\n    label: Spec Division\n" +
		"  - key: date\n    label: Date\n" +
		"  - key: client\n    label: Client\n" +
		"  - key: job\n    label: Job Number\n" +
		"  - key: desc\n    label: Description\n"
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

	tax, err := LoadTaxonomyFile(path)
	require.NoError(t, err)
	require.Len(t, tax.Fields, len(FieldOrder))
	f, ok := tax.Field(FieldClass)
	require.True(t, ok)
	assert.Equal(t, []Option{{Code: "DWG", Description: "Drawing"}}, f.Options)
}

func TestParentPath(t *testing.T) {
	assert.Equal(t, "", ParentPath("plan.pdf"))
	assert.Equal(t, "drawings", ParentPath("drawings/plan.pdf"))
	assert.Equal(t, "a/b", ParentPath("a/b/c.txt"))
}
