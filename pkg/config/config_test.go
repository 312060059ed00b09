package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilegrid.toml")
	data := `
[layout]
width = 200
height = 150
aspect = 0.5

[store]
backend = "redis"
ttl = "90m"
redis_addr = "cache:6379"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Layout.Width != 200 || cfg.Layout.Height != 150 || cfg.Layout.Aspect != 0.5 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.Items != Defaults().Layout.Items {
		t.Errorf("unset items should keep default, got %d", cfg.Layout.Items)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.TTL.Duration != 90*time.Minute || cfg.Store.RedisAddr != "cache:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want default", cfg.Server.Addr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[layout\nwidth = 1"},
		{"unknown key", "[layout]\ncolumns = 3"},
		{"bad duration", "[store]\nttl = \"soon\""},
		{"negative width", "[layout]\nwidth = -1"},
		{"negative items", "[layout]\nitems = -5"},
		{"zero ttl", "[store]\nttl = \"0s\""},
		{"unknown backend", "[store]\nbackend = \"etcd\""},
		{"redis without addr", "[store]\nbackend = \"redis\"\nredis_addr = \"\""},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\nmongo_uri = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), Defaults())
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Store.Backend = BackendMongo
	cfg.Layout.Items = 7

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Parse(data, Config{})
	if err != nil {
		t.Fatalf("Parse() error: %v\n%s", err, data)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
