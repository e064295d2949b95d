package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-query-api/internal/models"
)

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"json list", ".json", `[{"id":"a","name":"Drill","category":"Tools","price":89.5,"rating":4.1}]`},
		{"json document", ".json", `{"products":[{"id":"a","name":"Drill","category":"Tools","price":89.5,"rating":4.1}]}`},
		{"yaml list", ".yaml", "- id: a\n  name: Drill\n  category: Tools\n  price: 89.5\n  rating: 4.1\n"},
		{"yaml list after comment", ".yaml", "# demo catalog\n- id: a\n  name: Drill\n  category: Tools\n  price: 89.5\n  rating: 4.1\n"},
		{"yaml block sequence", ".yaml", "-\n  id: a\n  name: Drill\n  category: Tools\n  price: 89.5\n  rating: 4.1\n"},
		{"yaml list after marker", ".yaml", "---\n- id: a\n  name: Drill\n  category: Tools\n  price: 89.5\n  rating: 4.1\n"},
		{"yaml document", ".yml", "---\nproducts:\n  - id: a\n    name: Drill\n    category: Tools\n    price: 89.5\n    rating: 4.1\n"},
		{"toml document", ".toml", "[[products]]\nid = \"a\"\nname = \"Drill\"\ncategory = \"Tools\"\nprice = 89.5\nrating = 4.1\n"},
	}

	want := []models.Product{{ID: "a", Name: "Drill", Category: "Tools", Price: 89.5, Rating: 4.1}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_CreatedAt(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"a","name":"Drill","price":1,"rating":1,"created_at":"2024-03-01T10:00:00Z"}]`), ".json")
	require.NoError(t, err)
	assert.True(t, got[0].CreatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode([]byte("  \n"), ".json")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecode_YAMLCommentOnly(t *testing.T) {
	got, err := Decode([]byte("# nothing yet\n"), ".yaml")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecode_YAMLScalarRejected(t *testing.T) {
	_, err := Decode([]byte("just a string\n"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list or a mapping")
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("{}"), ".csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode([]byte("{not json"), ".json")
	assert.Error(t, err)

	_, err = Decode([]byte(`[{"id":"a","name":"Drill","price":-1}]`), ".json")
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestValidate(t *testing.T) {
	ok := models.Product{ID: "1", Name: "Drill", Price: 10, Rating: 4}
	require.NoError(t, Validate([]models.Product{ok}))
	require.NoError(t, Validate(nil))

	tests := map[string][]models.Product{
		"missing id":     {{Name: "Drill"}},
		"duplicate id":   {ok, ok},
		"missing name":   {{ID: "1", Name: "  "}},
		"negative price": {{ID: "1", Name: "Drill", Price: -0.01}},
		"rating high":    {{ID: "1", Name: "Drill", Rating: 5.1}},
		"rating low":     {{ID: "1", Name: "Drill", Rating: -1}},
	}
	for name, products := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(products), ErrInvalidProduct)
		})
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	seed, err := SeedProvider{}.Load(context.Background())
	require.NoError(t, err)
	seed[0].CreatedAt = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog"+ext)
			require.NoError(t, SaveFile(path, seed))

			provider := NewFileProvider(path)
			assert.Equal(t, "file:catalog"+ext, provider.Name())

			got, err := provider.Load(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(seed, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveFile_UnsupportedFormat(t *testing.T) {
	err := SaveFile(filepath.Join(t.TempDir(), "catalog.csv"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileProvider_Missing(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileProvider_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileProvider("catalog.json").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
