package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("reloaded config differs: %+v vs %+v", reloaded, cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[model]
corpus = "big.txt"
train_bigrams = false

[server]
max_limit = 5
min_prefix = 2

[cli]
default_no_filter = true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model.Corpus != "big.txt" || cfg.Model.TrainBigrams {
		t.Errorf("model section not applied: %+v", cfg.Model)
	}
	if cfg.Model.UnigramPath != DefaultConfig().Model.UnigramPath {
		t.Errorf("missing keys should keep defaults, got %q", cfg.Model.UnigramPath)
	}
	if cfg.Server.MaxLimit != 5 || cfg.Server.MinPrefix != 2 {
		t.Errorf("server section not applied: %+v", cfg.Server)
	}
	if !cfg.CLI.DefaultNoFilter {
		t.Error("cli section not applied")
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[model]
corpus = "big.txt"

[server]
max_limit = "ten"
max_prefix = 30
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model.Corpus != "big.txt" {
		t.Errorf("expected corpus to survive, got %q", cfg.Model.Corpus)
	}
	if cfg.Server.MaxLimit != DefaultConfig().Server.MaxLimit {
		t.Errorf("expected default max_limit, got %d", cfg.Server.MaxLimit)
	}
	if cfg.Server.MaxPrefix != 30 {
		t.Errorf("expected max_prefix 30, got %d", cfg.Server.MaxPrefix)
	}
}

func TestLoadConfigClampsLimits(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = 64
min_prefix = 0

[cli]
default_limit = -3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.MaxLimit != 10 || cfg.CLI.DefaultLimit != 10 {
		t.Errorf("expected limits clamped to 10, got server=%d cli=%d", cfg.Server.MaxLimit, cfg.CLI.DefaultLimit)
	}
	if cfg.Server.MinPrefix != 1 {
		t.Errorf("expected min_prefix 1, got %d", cfg.Server.MinPrefix)
	}
}

func TestLoadConfigUnparsable(t *testing.T) {
	path := writeConfig(t, "this is [[ not toml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults for unparsable file, got %+v", cfg)
	}
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 3\n")
	cfg, used, err := LoadConfigWithPriority(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if used != path {
		t.Errorf("expected config path %s, got %s", path, used)
	}
	if cfg.CLI.DefaultLimit != 3 {
		t.Errorf("expected default_limit 3, got %d", cfg.CLI.DefaultLimit)
	}
}
