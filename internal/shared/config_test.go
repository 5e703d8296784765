package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 8888 {
			t.Errorf("expected server port 8888, got %d", config.Server.Port)
		}
		if config.API.BaseURL != "https://api.spotify.com/v1" {
			t.Errorf("expected spotify base URL, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 15*time.Second {
			t.Errorf("expected 15s timeout, got %v", config.API.Timeout)
		}
		if config.Cache.Backend != "file" {
			t.Errorf("expected file cache backend, got %s", config.Cache.Backend)
		}
		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Cache.Path != DefaultConfig().Cache.Path {
			t.Errorf("created config cache path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[server]
host = "0.0.0.0"
port = 9090

[api]
timeout = "3s"

[cache]
backend = "sqlite"
path = "/tmp/tokens.db"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9090/callback"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Port != 9090 {
			t.Errorf("expected server port 9090, got %d", config.Server.Port)
		}
		if config.API.Timeout.Duration != 3*time.Second {
			t.Errorf("expected 3s timeout, got %v", config.API.Timeout)
		}
		if config.API.BaseURL != "https://api.spotify.com/v1" {
			t.Errorf("expected unset values to keep defaults, got %s", config.API.BaseURL)
		}
		if config.Cache.Backend != "sqlite" {
			t.Errorf("expected sqlite backend, got %s", config.Cache.Backend)
		}
	})

	t.Run("SaveConfig round trips", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Credentials.Spotify.ClientID != "saved" {
			t.Errorf("expected saved client id, got %s", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.API.Timeout.Duration != config.API.Timeout.Duration {
			t.Errorf("expected timeout %v, got %v", config.API.Timeout, loaded.API.Timeout)
		}
	})

	t.Run("LoadEnv overrides credentials", func(t *testing.T) {
		t.Setenv(EnvClientID, "env_id")
		t.Setenv(EnvClientSecret, "env_secret")
		t.Setenv(EnvRedirectURI, "http://localhost:8888/callback")

		config := DefaultConfig()
		if err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("expected missing env file to be ignored, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.RedirectURI != "http://127.0.0.1:8888/callback" {
			t.Errorf("expected normalized redirect uri, got %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("LoadEnv reads dotenv file", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("SPOTIFY_CLIENT_ID=dotenv_id\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Setenv(EnvClientID, "")
		os.Unsetenv(EnvClientID)

		config := DefaultConfig()
		if err := config.LoadEnv(envPath); err != nil {
			t.Fatalf("failed to load env: %v", err)
		}
		if config.Credentials.Spotify.ClientID != "dotenv_id" {
			t.Errorf("expected dotenv client id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		t.Run("valid default", func(t *testing.T) {
			if err := DefaultConfig().Validate(); err != nil {
				t.Errorf("expected default config to validate, got %v", err)
			}
		})

		t.Run("reports every missing value", func(t *testing.T) {
			config := DefaultConfig()
			config.Credentials.Spotify = SpotifyConfig{}
			config.Cache.Backend = "redis"

			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var merr *multierror.Error
			if !errors.As(err, &merr) {
				t.Fatalf("expected multierror, got %T", err)
			}
			if len(merr.Errors) != 4 {
				t.Errorf("expected 4 errors, got %d: %v", len(merr.Errors), err)
			}
			if !errors.Is(err, ErrMissingCredentials) {
				t.Error("expected ErrMissingCredentials in chain")
			}
			for _, name := range []string{EnvClientID, EnvClientSecret, EnvRedirectURI} {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("expected %s to be named, got %v", name, err)
				}
			}
		})
	})

	t.Run("CachePath expands home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		config := DefaultConfig()
		config.Cache.Path = "~/.spotify-mcp/token.json"
		if got := config.CachePath(); got != filepath.Join(home, ".spotify-mcp", "token.json") {
			t.Errorf("unexpected cache path %s", got)
		}
	})
}

func TestNormalizeRedirectURI(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "localhost with port", in: "http://localhost:8888/callback", want: "http://127.0.0.1:8888/callback"},
		{name: "localhost without port", in: "http://localhost/callback", want: "http://127.0.0.1/callback"},
		{name: "loopback untouched", in: "http://127.0.0.1:8888/callback", want: "http://127.0.0.1:8888/callback"},
		{name: "other host untouched", in: "https://example.com/cb", want: "https://example.com/cb"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRedirectURI(tt.in); got != tt.want {
				t.Errorf("NormalizeRedirectURI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
