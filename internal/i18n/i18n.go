package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techgear-vn/techgear/internal/constants"
)

// DefaultLocale is used when the request carries no usable locale hint.
const DefaultLocale = constants.LocaleVietnamese

const (
	localeQueryKey  = "lang"
	localeHeaderKey = "Accept-Language"
	localeCtxKey    = "locale"
)

// ResolveLocale picks the response locale for a request. Query parameter
// wins over the Accept-Language header; unknown values fall back to the
// default.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if cached, ok := c.Get(localeCtxKey); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}

	locale := normalizeLocale(c.Query(localeQueryKey))
	if locale == "" {
		locale = normalizeLocale(c.GetHeader(localeHeaderKey))
	}
	if locale == "" {
		locale = DefaultLocale
	}
	c.Set(localeCtxKey, locale)
	return locale
}

// T returns the catalog message for key in the given locale. Missing
// keys fall back to the default locale, then to the key itself.
func T(locale string, key string) string {
	if catalog, ok := catalogs[normalizeLocale(locale)]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf formats the catalog message for key with args.
func Sprintf(locale string, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func normalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}
	// Accept-Language can carry weighted lists, only the first tag matters.
	if idx := strings.IndexAny(value, ",;"); idx >= 0 {
		value = value[:idx]
	}
	if idx := strings.Index(value, "-"); idx >= 0 {
		value = value[:idx]
	}
	switch value {
	case constants.LocaleVietnamese, constants.LocaleEnglish:
		return value
	default:
		return ""
	}
}
