package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLang(t *testing.T) {
	orig := GetCurrentLang()
	defer func() { require.NoError(t, SetLang(orig)) }()

	require.NoError(t, SetLang(LangZH))
	assert.Equal(t, LangZH, GetCurrentLang())
	assert.Equal(t, "保存", T("save"))

	require.NoError(t, SetLang(LangEN))
	assert.Equal(t, "Save", T("save"))

	assert.Error(t, SetLang("fr"))
	assert.Equal(t, LangEN, GetCurrentLang(), "a rejected language leaves the current one")
}

func TestT_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "no_such_key_anywhere", T("no_such_key_anywhere"))
}

func TestTf_FormatsArgs(t *testing.T) {
	orig := GetCurrentLang()
	defer func() { require.NoError(t, SetLang(orig)) }()
	require.NoError(t, SetLang(LangEN))

	assert.Equal(t, "Recorded events: 7", Tf("events_recorded", 7))
}

func TestBothLanguagesCoverSameKeys(t *testing.T) {
	en := getDefaultENTranslations()
	zh := getDefaultZHTranslations()

	for key := range en {
		assert.Contains(t, zh, key)
	}
	for key := range zh {
		assert.Contains(t, en, key)
	}
}
