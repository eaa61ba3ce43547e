package sbam

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/sbam/store"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SBAM_TEST_KEY", "auth_token")
	ctx := context.Background()
	fs := afs.New()
	testCases := []struct {
		description string
		URL         string
		content     string
		expect      *Config
	}{
		{
			description: "yaml with env expansion",
			URL:         "mem://localhost/sbam/config.yaml",
			content: `storageType: cookie
storageKey: ${SBAM_TEST_KEY}
cookieURL: https://app.example.com/
cookie:
  path: /app
  sameSite: lax
  secure: true
`,
			expect: &Config{StorageType: "cookie", StorageKey: "auth_token", CookieURL: "https://app.example.com/"},
		},
		{
			description: "json",
			URL:         "mem://localhost/sbam/config.json",
			content:     `{"storageType":"local","localURL":"mem://localhost/sbam/tokens.json"}`,
			expect:      &Config{StorageType: "local", LocalURL: "mem://localhost/sbam/tokens.json"},
		},
	}
	for _, testCase := range testCases {
		require.NoError(t, fs.Upload(ctx, testCase.URL, 0o644, strings.NewReader(testCase.content)), testCase.description)
		config, err := LoadConfig(ctx, testCase.URL)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect.StorageType, config.StorageType, testCase.description)
		assert.Equal(t, testCase.expect.StorageKey, config.StorageKey, testCase.description)
		assert.Equal(t, testCase.expect.LocalURL, config.LocalURL, testCase.description)
		assert.Equal(t, testCase.expect.CookieURL, config.CookieURL, testCase.description)
	}

	config, err := LoadConfig(ctx, "mem://localhost/sbam/config.yaml")
	require.NoError(t, err)
	require.NotNil(t, config.Cookie)
	assert.Equal(t, "/app", config.Cookie.Path)
	assert.Equal(t, "lax", config.Cookie.SameSite)
	assert.True(t, config.Cookie.Secure)

	_, err = LoadConfig(ctx, "mem://localhost/sbam/missing.yaml")
	assert.Error(t, err)
}

func TestConfig_Merge(t *testing.T) {
	config := Config{StorageType: "session", StorageKey: "wt"}
	config.merge(&Config{StorageKey: "other", LocalURL: "mem://localhost/x.json"})
	assert.Equal(t, "session", config.StorageType)
	assert.Equal(t, "other", config.StorageKey)
	assert.Equal(t, "mem://localhost/x.json", config.LocalURL)
	config.merge(nil)
	assert.Equal(t, "other", config.StorageKey)
}

func TestManager_FromConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/sbam/manager_config.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader("storageType: local\nstorageKey: cfg\nlocalURL: mem://localhost/sbam/manager_config_tokens.json\n")))
	config, err := LoadConfig(ctx, URL)
	require.NoError(t, err)

	m, err := New[string](ctx, WithConfig(config), WithFS(fs), WithLogger(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, store.Local, m.Kind())
	assert.Equal(t, "cfg", m.Key())
	require.True(t, m.Save(ctx, "abc"))

	fresh, err := New[string](ctx, WithConfig(config), WithLogger(testLogger()))
	require.NoError(t, err)
	token, ok := fresh.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.True(t, fresh.Remove(ctx))
}
