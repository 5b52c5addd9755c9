package i18n

import (
	"testing"

	"github.com/techgear-vn/techgear/internal/constants"
)

func TestRateLimitMessagesResolve(t *testing.T) {
	// Keys referenced by throttled routes must exist in both catalogs,
	// otherwise T echoes the raw key to the client.
	keys := []string{
		"error.too_many_requests",
		"error.coupon_too_many",
		"error.checkout_too_many",
	}
	for _, locale := range []string{constants.LocaleVietnamese, constants.LocaleEnglish} {
		for _, key := range keys {
			if msg := T(locale, key); msg == key {
				t.Fatalf("key %q missing from %s catalog", key, locale)
			}
		}
	}
}

func TestMissingKeyFallsBackToDefaultLocaleThenKey(t *testing.T) {
	if msg := T(constants.LocaleEnglish, "error.does_not_exist"); msg != "error.does_not_exist" {
		t.Fatalf("expected raw key for unknown entry, got %q", msg)
	}
	// A key only present in the default catalog still resolves.
	if msg := T("de", "success"); msg != catalogs[DefaultLocale]["success"] {
		t.Fatalf("expected default locale fallback, got %q", msg)
	}
}
