package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvRequired(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		envVal    string
		setEnv    bool
		want      string
		wantError bool
	}{
		{
			name:      "returns error when not set",
			key:       "REQUIRED_VAR_NOT_SET",
			setEnv:    false,
			wantError: true,
		},
		{
			name:      "returns error when empty string",
			key:       "REQUIRED_VAR_EMPTY",
			envVal:    "",
			setEnv:    true,
			wantError: true,
		},
		{
			name:      "returns value when set",
			key:       "REQUIRED_VAR_SET",
			envVal:    "required_value",
			setEnv:    true,
			want:      "required_value",
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up before and after
			os.Unsetenv(tt.key)
			defer os.Unsetenv(tt.key)

			if tt.setEnv {
				os.Setenv(tt.key, tt.envVal)
			}

			got, err := getEnvRequired(tt.key)
			if tt.wantError {
				if err == nil {
					t.Errorf("getEnvRequired(%q) expected error, got nil", tt.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("getEnvRequired(%q) unexpected error: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("getEnvRequired(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		envVal string
		setEnv bool
		def    string
		want   string
	}{
		{
			name: "returns default when not set",
			key:  "OPTIONAL_VAR_NOT_SET",
			def:  "fallback",
			want: "fallback",
		},
		{
			name:   "returns default when empty",
			key:    "OPTIONAL_VAR_EMPTY",
			envVal: "",
			setEnv: true,
			def:    "fallback",
			want:   "fallback",
		},
		{
			name:   "returns value when set",
			key:    "OPTIONAL_VAR_SET",
			envVal: "actual",
			setEnv: true,
			def:    "fallback",
			want:   "actual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv(tt.key)
			defer os.Unsetenv(tt.key)

			if tt.setEnv {
				os.Setenv(tt.key, tt.envVal)
			}

			if got := getEnv(tt.key, tt.def); got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.def, got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		envVal string
		setEnv bool
		def    int
		want   int
	}{
		{
			name: "returns default when not set",
			key:  "INT_VAR_NOT_SET",
			def:  42,
			want: 42,
		},
		{
			name:   "returns default when invalid",
			key:    "INT_VAR_INVALID",
			envVal: "not-a-number",
			setEnv: true,
			def:    42,
			want:   42,
		},
		{
			name:   "returns value when valid",
			key:    "INT_VAR_VALID",
			envVal: "120",
			setEnv: true,
			def:    42,
			want:   120,
		},
		{
			name:   "trims whitespace",
			key:    "INT_VAR_SPACES",
			envVal: "  7  ",
			setEnv: true,
			def:    42,
			want:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv(tt.key)
			defer os.Unsetenv(tt.key)

			if tt.setEnv {
				os.Setenv(tt.key, tt.envVal)
			}

			if got := getEnvInt(tt.key, tt.def); got != tt.want {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d", tt.key, tt.def, got, tt.want)
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	envVars := []string{"SPO_ACCESS_TOKEN", "HTTP_TIMEOUT", "HTTP_MAX_BODY_SIZE", "LOG_LEVEL"}
	cleanup := func() {
		for _, key := range envVars {
			os.Unsetenv(key)
		}
	}

	t.Run("fails without access token", func(t *testing.T) {
		cleanup()
		defer cleanup()

		if _, err := LoadSettings(); err == nil {
			t.Error("LoadSettings() expected error when SPO_ACCESS_TOKEN is unset")
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		cleanup()
		defer cleanup()
		os.Setenv("SPO_ACCESS_TOKEN", "test-token")

		settings, err := LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings() unexpected error: %v", err)
		}

		if settings.AccessToken != "test-token" {
			t.Errorf("AccessToken = %q, want test-token", settings.AccessToken)
		}
		if settings.HTTPTimeout != 60*time.Second {
			t.Errorf("HTTPTimeout = %v, want 60s", settings.HTTPTimeout)
		}
		if settings.HTTPMaxBodySize != 10*1024*1024 {
			t.Errorf("HTTPMaxBodySize = %d, want %d", settings.HTTPMaxBodySize, 10*1024*1024)
		}
		if settings.LogLevel != "info" {
			t.Errorf("LogLevel = %q, want info", settings.LogLevel)
		}
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		cleanup()
		defer cleanup()
		os.Setenv("SPO_ACCESS_TOKEN", "test-token")
		os.Setenv("HTTP_TIMEOUT", "120")
		os.Setenv("HTTP_MAX_BODY_SIZE", "1024")
		os.Setenv("LOG_LEVEL", "debug")

		settings, err := LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings() unexpected error: %v", err)
		}

		if settings.HTTPTimeout != 120*time.Second {
			t.Errorf("HTTPTimeout = %v, want 120s", settings.HTTPTimeout)
		}
		if settings.HTTPMaxBodySize != 1024 {
			t.Errorf("HTTPMaxBodySize = %d, want 1024", settings.HTTPMaxBodySize)
		}
		if settings.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want debug", settings.LogLevel)
		}
	})
}
