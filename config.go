package sbam

import (
	"context"
	"fmt"
	"os"

	"github.com/viant/afs"
	"github.com/viant/sbam/store/cookie"
	"gopkg.in/yaml.v3"
)

// DefaultStorageKey is the key used when none is configured.
const DefaultStorageKey = "wt"

// Config defines manager settings that can be populated from CLI flags or a
// YAML/JSON file.
type Config struct {
	StorageType  string          `yaml:"storageType,omitempty" json:"storageType,omitempty" short:"t" long:"type" description:"storage type: local, session or cookie"`
	StorageKey   string          `yaml:"storageKey,omitempty" json:"storageKey,omitempty" short:"k" long:"key" description:"storage key"`
	LocalURL     string          `yaml:"localURL,omitempty" json:"localURL,omitempty" short:"u" long:"local" description:"local store snapshot URL"`
	SessionID    string          `yaml:"sessionID,omitempty" json:"sessionID,omitempty" long:"session" description:"session ID"`
	CookieURL    string          `yaml:"cookieURL,omitempty" json:"cookieURL,omitempty" long:"site" description:"cookie site URL"`
	CookieJarURL string          `yaml:"cookieJarURL,omitempty" json:"cookieJarURL,omitempty" long:"jar" description:"cookie jar snapshot URL"`
	Cookie       *cookie.Options `yaml:"cookie,omitempty" json:"cookie,omitempty" no-flag:"true"`
}

// LoadConfig reads a YAML or JSON config from URL. ${VAR} references are
// expanded from the environment before decoding.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	expanded := os.ExpandEnv(string(data))
	config := &Config{}
	if err = yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return config, nil
}

func (c *Config) merge(from *Config) {
	if from == nil {
		return
	}
	if from.StorageType != "" {
		c.StorageType = from.StorageType
	}
	if from.StorageKey != "" {
		c.StorageKey = from.StorageKey
	}
	if from.LocalURL != "" {
		c.LocalURL = from.LocalURL
	}
	if from.SessionID != "" {
		c.SessionID = from.SessionID
	}
	if from.CookieURL != "" {
		c.CookieURL = from.CookieURL
	}
	if from.CookieJarURL != "" {
		c.CookieJarURL = from.CookieJarURL
	}
	if from.Cookie != nil {
		c.Cookie = from.Cookie
	}
}
