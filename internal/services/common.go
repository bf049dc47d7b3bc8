package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/cache"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// authorizeStartup passes when the caller owns the startup or holds permission.
func authorizeStartup(session *auth.Session, startup *models.Startup, permission string) error {
	if session == nil {
		return apperrors.ErrNotAuthenticated
	}
	if startup.IsOwnedBy(session.UserID) || session.Can(permission) {
		return nil
	}
	return apperrors.ErrInsufficientPermissions.WithDetails(map[string]string{"required": permission})
}

// slugLetters spells out letters that do not decompose into an ASCII base.
var slugLetters = strings.NewReplacer("æ", "ae", "ø", "o", "œ", "oe", "ð", "d", "þ", "th", "ß", "ss", "ł", "l")

// Slugify lower-cases s, folds accented letters to ASCII and collapses every
// run of other characters into one hyphen.
func Slugify(s string) string {
	folded := slugLetters.Replace(strings.ToLower(strings.TrimSpace(s)))
	folded = norm.NFD.String(folded)

	var b strings.Builder
	hyphen := false
	for _, r := range folded {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "item"
	}
	return slug
}

// checkRegionID fails with a validation error unless id is nil or names an
// existing region.
func checkRegionID(db *gorm.DB, regionRepo repositories.RegionRepository, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := uuid.Parse(*id); err != nil {
		return errUnknownRegion()
	}
	if _, err := regionRepo.FindByID(db, *id); err != nil {
		if errors.Is(err, repositories.ErrRegionNotFound) {
			return errUnknownRegion()
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// regionIDUpdate adds region_id to updates when the request set it. An
// explicit null clears the region.
func regionIDUpdate(db *gorm.DB, regionRepo repositories.RegionRepository, field dto.NullableID, updates map[string]interface{}) error {
	if !field.Set {
		return nil
	}
	if field.Value == nil {
		updates["region_id"] = nil
		return nil
	}
	if err := checkRegionID(db, regionRepo, field.Value); err != nil {
		return err
	}
	updates["region_id"] = *field.Value
	return nil
}

func errUnknownRegion() error {
	return apperrors.ValidationError(map[string]string{"regionId": "unknown region"})
}

// uniqueSlug returns base, or base plus a short uuid suffix when base is taken.
func uniqueSlug(db *gorm.DB, base string, exists func(db *gorm.DB, slug string) (bool, error)) (string, error) {
	taken, err := exists(db, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return base + "-" + uuid.NewString()[:8], nil
}

func stringArray(values []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// invalidateRegionCache drops the region list and the given region pages.
// Failures are logged; a stale cache entry expires on its own.
func invalidateRegionCache(ctx context.Context, c cache.Cache, slugs ...string) {
	keys := []string{cache.RegionListKey}
	for _, slug := range slugs {
		keys = append(keys, cache.RegionPageKey(slug))
	}
	if err := c.Delete(ctx, keys...); err != nil {
		logger.CtxWithError(ctx, "Failed to invalidate region cache", err, "keys", keys)
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// resolveRegionFilter maps a region query value to a Region row, or to a
// lower-cased legacy string when no region has that slug.
func resolveRegionFilter(db *gorm.DB, repo repositories.RegionRepository, value string) (*models.Region, string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil, "", nil
	}
	region, err := repo.FindBySlug(db, value)
	if err == nil {
		return region, "", nil
	}
	if errors.Is(err, repositories.ErrRegionNotFound) {
		return nil, value, nil
	}
	return nil, "", err
}
