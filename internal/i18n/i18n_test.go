package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogComplete(t *testing.T) {
	require.NoError(t, Verify())
}

func TestCatalogKeySetsIdentical(t *testing.T) {
	en := catalog[LocaleEN]
	for _, loc := range Supported() {
		msgs, ok := catalog[loc]
		require.True(t, ok, "locale %s missing", loc)
		assert.Len(t, msgs, len(en), "locale %s key count differs", loc)
		for key := range en {
			_, ok := msgs[key]
			assert.True(t, ok, "locale %s missing key %s", loc, key)
		}
	}
}

func TestResolveSubstitutesParams(t *testing.T) {
	got := Resolve(KeyLanguageChanged, LocaleEN, Params{"language": "English"})
	assert.Equal(t, "Language set to English.", got)
}

func TestResolveDefaultsUnknownLocale(t *testing.T) {
	got := Resolve(KeyNoWallet, Locale("DE"), nil)
	assert.Equal(t, catalog[LocaleEN][KeyNoWallet], got)

	got = Resolve(KeyNoWallet, "", nil)
	assert.Equal(t, catalog[LocaleEN][KeyNoWallet], got)
}

func TestResolveLocalizedWallet(t *testing.T) {
	params := Params{
		"eth_address": "0x...",
		"ton_address": "EQ...",
		"eth_balance": "0",
		"ton_balance": "0",
	}
	ua := Resolve(KeyWalletSummary, LocaleUA, params)
	assert.True(t, strings.HasPrefix(ua, "Ваші адреси:"), ua)
	assert.Contains(t, ua, "0x...")
	assert.Contains(t, ua, "EQ...")
}

func TestParse(t *testing.T) {
	for code, want := range map[string]Locale{
		"EN":   LocaleEN,
		"ua":   LocaleUA,
		" RU ": LocaleRU,
	} {
		got, ok := Parse(code)
		require.True(t, ok, code)
		assert.Equal(t, want, got)
	}

	_, ok := Parse("FR")
	assert.False(t, ok)
	_, ok = Parse("")
	assert.False(t, ok)
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "English", LocaleEN.DisplayName())
	assert.Equal(t, "Українська", LocaleUA.DisplayName())
	assert.Equal(t, "Русский", LocaleRU.DisplayName())
}
