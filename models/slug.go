package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// maxSlugLength bounds the base slug segment. Numeric suffixes shrink the
// base so the combined value never exceeds it.
const maxSlugLength = 50

// fallbackSlug is used when a name normalizes to nothing at all.
const fallbackSlug = "item"

// Slugify normalizes free-form text into a URL-safe lowercase token:
// ASCII alphanumerics are kept, runs of whitespace and punctuation collapse
// to a single hyphen, and edge hyphens are trimmed.
func Slugify(value string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// BuildUniqueSlug derives a slug from value that is unique among rows of
// model at the moment of assignment. excludeID skips the record's own row on
// updates. Collisions get a numeric suffix starting at 2, with the base
// re-truncated so the result stays within maxSlugLength.
//
// The check-then-insert is not atomic; the unique index on the slug column is
// the final arbiter, and a concurrent duplicate surfaces as
// gorm.ErrDuplicatedKey at commit time.
func BuildUniqueSlug(tx *gorm.DB, model any, value string, excludeID uint) (string, error) {
	base := Slugify(value)
	if len(base) > maxSlugLength {
		base = base[:maxSlugLength]
	}
	if base == "" {
		base = fallbackSlug
	}

	slug := base
	for counter := 2; ; counter++ {
		query := tx.Model(model).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}

		var taken int64
		if err := query.Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return slug, nil
		}

		suffix := fmt.Sprintf("-%d", counter)
		slug = base[:min(len(base), maxSlugLength-len(suffix))] + suffix
	}
}
