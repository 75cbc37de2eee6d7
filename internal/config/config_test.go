package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FixedAngle == nil || *cfg.FixedAngle != 42.0 {
		t.Errorf("Expected FixedAngle 42.0, got %v", cfg.FixedAngle)
	}
	if cfg.NonFinitePolicy == nil || *cfg.NonFinitePolicy != PolicyReject {
		t.Errorf("Expected NonFinitePolicy %q, got %v", PolicyReject, cfg.NonFinitePolicy)
	}
	if cfg.GetUnits() != "deg" {
		t.Errorf("GetUnits() = %s, want deg", cfg.GetUnits())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}

func TestEmptyConfigGetters(t *testing.T) {
	cfg := EmptyConfig()

	if cfg.GetFixedAngle() != 42.0 {
		t.Errorf("GetFixedAngle() = %f, want 42.0", cfg.GetFixedAngle())
	}
	if cfg.GetNonFinitePolicy() != PolicyReject {
		t.Errorf("GetNonFinitePolicy() = %s, want %s", cfg.GetNonFinitePolicy(), PolicyReject)
	}
	if cfg.GetFixturesPath() != "" {
		t.Errorf("GetFixturesPath() = %q, want empty", cfg.GetFixturesPath())
	}
	if cfg.GetUnits() != "deg" {
		t.Errorf("GetUnits() = %s, want deg", cfg.GetUnits())
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hinge.json")

	testJSON := `{
  "fixed_angle": 185.5,
  "non_finite_policy": "half-opened",
  "units": "rad"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GetFixedAngle() != 185.5 {
		t.Errorf("GetFixedAngle() = %f, want 185.5", cfg.GetFixedAngle())
	}
	if cfg.GetNonFinitePolicy() != PolicyHalfOpened {
		t.Errorf("GetNonFinitePolicy() = %s, want %s", cfg.GetNonFinitePolicy(), PolicyHalfOpened)
	}
	if cfg.GetUnits() != "rad" {
		t.Errorf("GetUnits() = %s, want rad", cfg.GetUnits())
	}
	// Omitted field keeps its default
	if cfg.FixturesPath != nil {
		t.Errorf("Expected FixturesPath unset, got %q", *cfg.FixturesPath)
	}
}

func TestLoadConfig_DefaultsFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("LoadConfig(%s) failed: %v", DefaultConfigPath, err)
	}
	if cfg.GetFixedAngle() != 42.0 {
		t.Errorf("defaults file fixed_angle = %f, want 42.0", cfg.GetFixedAngle())
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"wrong extension", write("hinge.yaml", "{}"), ".json extension"},
		{"missing file", filepath.Join(tmpDir, "missing.json"), "failed to stat"},
		{"malformed JSON", write("bad.json", "{"), "failed to parse"},
		{"unknown policy", write("policy.json", `{"non_finite_policy":"ignore"}`), "non_finite_policy"},
		{"unknown units", write("units.json", `{"units":"grad"}`), "units must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	data := make([]byte, 1024*1024+1)
	for i := range data {
		data[i] = ' '
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write big config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected too large error, got %v", err)
	}
}

func TestNewAngleSource(t *testing.T) {
	ctx := context.Background()

	cfg := EmptyConfig()
	cfg.FixedAngle = ptrFloat64(300)
	src, err := cfg.NewAngleSource()
	if err != nil {
		t.Fatalf("NewAngleSource failed: %v", err)
	}
	if angle, _ := src.ReadAngle(ctx); angle != 300 {
		t.Errorf("fixed source angle = %f, want 300", angle)
	}

	fixtures := filepath.Join(t.TempDir(), "angles.txt")
	if err := os.WriteFile(fixtures, []byte("10\n20\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixtures: %v", err)
	}
	cfg.FixturesPath = ptrString(fixtures)
	src, err = cfg.NewAngleSource()
	if err != nil {
		t.Fatalf("NewAngleSource with fixtures failed: %v", err)
	}
	first, _ := src.ReadAngle(ctx)
	second, _ := src.ReadAngle(ctx)
	if first != 10 || second != 20 {
		t.Errorf("replayed %f, %f, want 10, 20", first, second)
	}

	cfg.FixturesPath = ptrString(filepath.Join(t.TempDir(), "missing.txt"))
	if _, err := cfg.NewAngleSource(); err == nil {
		t.Error("Expected error for missing fixtures file")
	}
}

func TestLoadConfig_RelativeFixturesPath(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, "etc")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "angles.txt"), []byte("200\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixtures: %v", err)
	}

	configPath := filepath.Join(configDir, "hinge.json")
	if err := os.WriteFile(configPath, []byte(`{"fixtures_path": "angles.txt"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := filepath.Join(configDir, "angles.txt")
	if cfg.GetFixturesPath() != want {
		t.Errorf("GetFixturesPath() = %q, want %q", cfg.GetFixturesPath(), want)
	}

	src, err := cfg.NewAngleSource()
	if err != nil {
		t.Fatalf("NewAngleSource failed: %v", err)
	}
	if angle, _ := src.ReadAngle(context.Background()); angle != 200 {
		t.Errorf("replayed angle = %f, want 200", angle)
	}
}

func TestLoadConfig_AbsoluteFixturesPath(t *testing.T) {
	tmpDir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "angles.txt")
	configPath := filepath.Join(tmpDir, "hinge.json")
	if err := os.WriteFile(configPath, []byte(`{"fixtures_path": "`+filepath.ToSlash(abs)+`"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GetFixturesPath() != filepath.ToSlash(abs) {
		t.Errorf("GetFixturesPath() = %q, want %q", cfg.GetFixturesPath(), filepath.ToSlash(abs))
	}
}
