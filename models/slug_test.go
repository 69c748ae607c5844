package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple name", "Fresh Organic Apples", "fresh-organic-apples"},
		{"Surrounding and repeated whitespace", "  Hello,   World!  ", "hello-world"},
		{"Existing hyphens collapse", "--Already--Slugged--", "already-slugged"},
		{"Punctuation becomes hyphens", "Tea & Coffee", "tea-coffee"},
		{"Digits are kept", "42 Things", "42-things"},
		{"Uppercase is lowered", "GREEN Basket", "green-basket"},
		{"Entirely non-ASCII input", "ЯБЛОКИ", ""},
		{"Empty input", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestBuildUniqueSlug(t *testing.T) {
	t.Run("Base form when namespace is free", func(t *testing.T) {
		db := newTestDB(t)

		slug, err := BuildUniqueSlug(db, &Category{}, "Fresh Organic Apples", 0)
		require.NoError(t, err)
		assert.Equal(t, "fresh-organic-apples", slug)
	})

	t.Run("Fallback for unusable names", func(t *testing.T) {
		db := newTestDB(t)

		slug, err := BuildUniqueSlug(db, &Category{}, "!!!", 0)
		require.NoError(t, err)
		assert.Equal(t, "item", slug)
	})

	t.Run("Collisions get a numeric suffix", func(t *testing.T) {
		db := newTestDB(t)

		for i, expected := range []string{
			"fresh-organic-apples",
			"fresh-organic-apples-2",
			"fresh-organic-apples-3",
		} {
			product := &Product{Name: "Fresh Organic Apples", Price: decimal.NewFromInt(1)}
			require.NoError(t, db.Create(product).Error, "product %d", i+1)
			assert.Equal(t, expected, product.Slug)
		}
	})

	t.Run("Base form is truncated to 50 characters", func(t *testing.T) {
		db := newTestDB(t)

		long := strings.Repeat("a", 60)

		first := &Product{Name: long, Price: decimal.NewFromInt(1)}
		require.NoError(t, db.Create(first).Error)
		assert.Equal(t, strings.Repeat("a", 50), first.Slug)

		// The suffix eats into the base so the total stays within the limit.
		second := &Product{Name: long, Price: decimal.NewFromInt(1)}
		require.NoError(t, db.Create(second).Error)
		assert.Equal(t, strings.Repeat("a", 48)+"-2", second.Slug)
		assert.LessOrEqual(t, len(second.Slug), 50)
	})

	t.Run("Record excludes itself on update", func(t *testing.T) {
		db := newTestDB(t)

		category := &Category{Name: "Fruits"}
		require.NoError(t, db.Create(category).Error)
		require.Equal(t, "fruits", category.Slug)

		slug, err := BuildUniqueSlug(db, &Category{}, category.Name, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "fruits", slug, "own row must not count as a collision")
	})

	t.Run("Result is URL-safe and bounded", func(t *testing.T) {
		db := newTestDB(t)

		names := []string{
			"Fresh Organic Apples",
			"  Fancy --- Name!  ",
			strings.Repeat("Pineapple ", 20),
			"&&&",
		}
		for _, name := range names {
			slug, err := BuildUniqueSlug(db, &Category{}, name, 0)
			require.NoError(t, err)
			assert.NotEmpty(t, slug)
			assert.LessOrEqual(t, len(slug), 50)
			for _, r := range slug {
				valid := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
				assert.True(t, valid, "unexpected rune %q in slug %q", r, slug)
			}
		}
	})

	t.Run("Slug survives later saves", func(t *testing.T) {
		db := newTestDB(t)

		category := &Category{Name: "Fruits"}
		require.NoError(t, db.Create(category).Error)

		category.Name = "Fresh Fruits"
		require.NoError(t, db.Save(category).Error)
		assert.Equal(t, "fruits", category.Slug, "rename must not re-derive the slug")
	})
}
