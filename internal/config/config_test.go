package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/reelcache/reelcache/internal/domain"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	viper.Set("tmdb_api_key", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TmdbApiKey != "test-key" {
		t.Errorf("api key = %q", cfg.TmdbApiKey)
	}
	if cfg.DataDir != "." {
		t.Errorf("data dir = %q, want .", cfg.DataDir)
	}
	if cfg.CacheTTL != domain.DefaultCacheTTL {
		t.Errorf("cache ttl = %s, want default %s", cfg.CacheTTL, domain.DefaultCacheTTL)
	}
}

func TestLoadRequiresApiKey(t *testing.T) {
	resetViper(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestLoadCacheTTL(t *testing.T) {
	tests := []struct {
		name    string
		ttl     string
		want    time.Duration
		wantErr bool
	}{
		{name: "explicit", ttl: "45m", want: 45 * time.Minute},
		{name: "negative rejected", ttl: "-5m", wantErr: true},
		{name: "sub-minute rejected", ttl: "30s", wantErr: true},
		{name: "one minute accepted", ttl: "1m", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set("tmdb_api_key", "test-key")
			viper.Set("cache_ttl", tt.ttl)

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for ttl %q", tt.ttl)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.CacheTTL != tt.want {
				t.Errorf("cache ttl = %s, want %s", cfg.CacheTTL, tt.want)
			}
		})
	}
}

func TestLoadRegionAndDataDir(t *testing.T) {
	resetViper(t)
	viper.Set("tmdb_api_key", "test-key")
	viper.Set("region", "US")
	viper.Set("data_dir", "/tmp/reelcache")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Region != "US" {
		t.Errorf("region = %q, want US", cfg.Region)
	}
	if cfg.DataDir != "/tmp/reelcache" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
}
