package media

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"andaman_market/internal/domain"
)

// Category is the resource family an upload belongs to; it governs the
// storage path shape.
type Category string

const (
	CategoryHotel   Category = "hotel"
	CategoryRoom    Category = "room"
	CategoryService Category = "service"
	CategoryPackage Category = "package_category"
)

// ParseCategory validates a caller-supplied category string.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.TrimSpace(s)); c {
	case CategoryHotel, CategoryRoom, CategoryService, CategoryPackage:
		return c, nil
	default:
		return "", domain.ErrInvalidCategory
	}
}

// TempParentPrefix marks a parent identifier for a resource that has not
// been created yet. All temp uploads share one staging segment; callers
// reconcile them after the resource exists.
const TempParentPrefix = "temp-"

func IsTempParent(parentID string) bool {
	return strings.HasPrefix(parentID, TempParentPrefix)
}

// directory template per category; %s is the parent segment
var categoryDirs = map[Category]string{
	CategoryHotel:   "images/hotels/%s",
	CategoryRoom:    "images/hotels/%s/rooms",
	CategoryService: "images/services/%s",
	CategoryPackage: "images/package_categories/%s",
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// ResolvePath derives the canonical storage path for one file. Temp parents
// collapse into the shared "temp" segment; any other parent must be the
// decimal ID of an existing resource. Tenant isolation hangs on that
// directory segment, so nothing caller-controlled may pass through raw.
// The millisecond timestamp prefix is the sole uniqueness token, so
// same-name files written in the same millisecond can overwrite each other.
func ResolvePath(cat Category, parentID, fileName string, now time.Time) (string, error) {
	tpl, ok := categoryDirs[cat]
	if !ok {
		return "", domain.ErrInvalidCategory
	}
	parent := "temp"
	if !IsTempParent(parentID) {
		id, err := strconv.ParseInt(parentID, 10, 64)
		if err != nil || id <= 0 {
			return "", domain.ErrInvalidParent
		}
		parent = strconv.FormatInt(id, 10)
	}
	name := unsafeFileChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf(tpl, parent) + fmt.Sprintf("/%d-%s", now.UnixMilli(), name), nil
}
