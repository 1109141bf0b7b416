// Package i18n holds the localized message catalog for the bot.
//
// Message keys are an enumerated type checked against the per-locale tables
// at startup: an incomplete catalog is a configuration defect that refuses
// to boot, never a runtime fault path.
package i18n

import (
	"fmt"
	"sort"
	"strings"
)

// Locale is a selected display language for outbound text.
type Locale string

const (
	LocaleEN Locale = "EN"
	LocaleUA Locale = "UA"
	LocaleRU Locale = "RU"
)

// DefaultLocale is used until the user explicitly picks a language.
const DefaultLocale = LocaleEN

// Supported returns all locales the catalog must cover, in display order.
func Supported() []Locale {
	return []Locale{LocaleEN, LocaleUA, LocaleRU}
}

// Parse validates a locale code coming from a callback payload.
func Parse(code string) (Locale, bool) {
	switch Locale(strings.ToUpper(strings.TrimSpace(code))) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleUA:
		return LocaleUA, true
	case LocaleRU:
		return LocaleRU, true
	}
	return "", false
}

// DisplayName returns the locale's self-describing button label.
func (l Locale) DisplayName() string {
	switch l {
	case LocaleUA:
		return "Українська"
	case LocaleRU:
		return "Русский"
	default:
		return "English"
	}
}

// Key identifies a single user-facing message.
type Key string

const (
	KeyWelcome         Key = "welcome"
	KeyChooseLanguage  Key = "choose_language"
	KeyLanguageChanged Key = "language_changed"
	KeyWalletSummary   Key = "wallet_summary"
	KeyNoWallet        Key = "no_wallet"
	KeyReceive         Key = "receive"
	KeySendPending     Key = "send_pending"
	KeySwapPending     Key = "swap_pending"
	KeyRateUsage       Key = "rate_usage"
	KeyRateResult      Key = "rate_result"
	KeyRateUnavailable Key = "rate_unavailable"
)

func allKeys() []Key {
	return []Key{
		KeyWelcome,
		KeyChooseLanguage,
		KeyLanguageChanged,
		KeyWalletSummary,
		KeyNoWallet,
		KeyReceive,
		KeySendPending,
		KeySwapPending,
		KeyRateUsage,
		KeyRateResult,
		KeyRateUnavailable,
	}
}

// Params carries named values for {placeholder} substitution.
type Params map[string]string

// Resolve returns the formatted message for key in the given locale.
// An unset locale resolves to DefaultLocale. A missing key returns the key
// itself so nothing is silently swallowed; Verify keeps that unreachable
// for any key used by a live handler.
func Resolve(key Key, loc Locale, params Params) string {
	if _, ok := catalog[loc]; !ok {
		loc = DefaultLocale
	}
	tmpl, ok := catalog[loc][key]
	if !ok {
		return string(key)
	}
	return render(tmpl, params)
}

func render(tmpl string, params Params) string {
	if len(params) == 0 {
		return tmpl
	}
	out := tmpl
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// Verify checks catalog completeness: every supported locale must define
// every message key. Call it once at startup; a non-nil error is fatal.
func Verify() error {
	var missing []string
	for _, loc := range Supported() {
		msgs, ok := catalog[loc]
		if !ok {
			missing = append(missing, fmt.Sprintf("%s: entire locale", loc))
			continue
		}
		for _, key := range allKeys() {
			if _, ok := msgs[key]; !ok {
				missing = append(missing, fmt.Sprintf("%s: %s", loc, key))
			}
		}
		for key := range msgs {
			if !isKnownKey(key) {
				missing = append(missing, fmt.Sprintf("%s: unknown key %s", loc, key))
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("i18n: incomplete catalog: %s", strings.Join(missing, "; "))
	}
	return nil
}

func isKnownKey(key Key) bool {
	for _, k := range allKeys() {
		if k == key {
			return true
		}
	}
	return false
}
