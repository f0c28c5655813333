package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultCacheSize    = 10000
	defaultKeyPrecision = 5
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Here holds HERE Routing API v8 credentials and endpoint.
	Here *HereConfig `json:"here" yaml:"here"`

	// Google holds Google Routes API v2 credentials and endpoint.
	Google *GoogleConfig `json:"google" yaml:"google"`

	// Entur configures the JourneyPlanner departure schedule source.
	Entur *EnturConfig `json:"entur" yaml:"entur"`

	// Resolver configures route result caching.
	Resolver *ResolverConfig `json:"resolver" yaml:"resolver"`

	// Firebase configures leave-reminder push notifications.
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Locale is the verdict formatter locale hint, e.g. "nb" or "en".
	Locale string `json:"locale" yaml:"locale"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// HereConfig defines credentials for the HERE Routing API v8.
type HereConfig struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// Endpoint overrides the routing endpoint; used by tests.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// IsConfigured reports whether the HERE adapter can be used.
func (c *HereConfig) IsConfigured() bool {
	return c != nil && c.APIKey != ""
}

// GoogleConfig defines credentials for the Google Routes API v2.
type GoogleConfig struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// Endpoint overrides the computeRoutes endpoint; used by tests.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// IsConfigured reports whether the Google adapter can be used.
func (c *GoogleConfig) IsConfigured() bool {
	return c != nil && c.APIKey != ""
}

// GetAPIKey returns the configured API key, or empty when unconfigured.
func (c *GoogleConfig) GetAPIKey() string {
	if c == nil {
		return ""
	}

	return c.APIKey
}

// EnturConfig defines the departure schedule source.
type EnturConfig struct {
	// ClientName is sent as ET-Client-Name, required by the Entur API terms.
	ClientName string `json:"clientName" yaml:"clientName"`

	// Endpoint overrides the JourneyPlanner GraphQL endpoint; used by tests.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// ResolverConfig defines routing resolver cache behaviour.
type ResolverConfig struct {
	// CacheSize caps the number of cached route results (LRU eviction).
	CacheSize int `json:"cacheSize" yaml:"cacheSize"`

	// CacheTTL expires traffic-sensitive results; zero means no expiry.
	CacheTTL time.Duration `json:"cacheTTL" yaml:"cacheTTL"`

	// KeyPrecision is the number of coordinate decimal places used for the
	// cache key. The default of 5 decimal places (~1.1 m) is the coalescing
	// granularity; changing it trades hit rate against routing accuracy.
	KeyPrecision int `json:"keyPrecision" yaml:"keyPrecision"`
}

// CacheSizeOrDefault returns the configured cache cap or the default.
func (c *ResolverConfig) CacheSizeOrDefault() int {
	if c == nil || c.CacheSize <= 0 {
		return defaultCacheSize
	}

	return c.CacheSize
}

// TTL returns the configured cache TTL; zero disables expiry.
func (c *ResolverConfig) TTL() time.Duration {
	if c == nil {
		return 0
	}

	return c.CacheTTL
}

// Precision returns the cache key coordinate precision in decimal places.
func (c *ResolverConfig) Precision() int {
	if c == nil || c.KeyPrecision <= 0 {
		return defaultKeyPrecision
	}

	return c.KeyPrecision
}

// FirebaseConfig defines Firebase configuration for push notifications.
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: HERE_APIKEY -> here.apiKey (not here.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Locale == "" {
		cfg.Locale = "nb"
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
