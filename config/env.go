package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL = "http://localhost:8080/api"
	defaultAPITimeout = "30s"
	defaultAPIRetries = "1"
	defaultAppEnv     = "local"
	defaultStateFile  = ".dokon/session.json"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"API_BASE_URL": defaultAPIBaseURL,
		"API_TIMEOUT":  defaultAPITimeout,
		"API_RETRIES":  defaultAPIRetries,
		"APP_ENV":      defaultAppEnv,
		"STATE_FILE":   defaultStateFile,
	}
}

// APIBaseURL is the storefront backend root, without a trailing slash.
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

// APITimeout is the per-attempt timeout for outgoing API calls.
func APITimeout() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("API_TIMEOUT", defaultAPITimeout))
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultAPITimeout)
	}
	return d
}

// APIRetries is the total attempt count for outgoing API calls (1 = no retry).
func APIRetries() int {
	_ = Load()
	n, err := strconv.Atoi(get("API_RETRIES", defaultAPIRetries))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// StateFile is where the CLI persists the session token between invocations.
func StateFile() string {
	_ = Load()
	return get("STATE_FILE", defaultStateFile)
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	parsed, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range parsed {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
