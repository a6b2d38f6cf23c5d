package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 960 {
		t.Errorf("expected width 960, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 540 {
		t.Errorf("expected height 540, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test stage defaults
	if cfg.Stage.Layout != "flights" {
		t.Errorf("expected layout 'flights', got %s", cfg.Stage.Layout)
	}
	if cfg.Stage.BallMode != "path" {
		t.Errorf("expected ball mode 'path', got %s", cfg.Stage.BallMode)
	}
	if cfg.Stage.Seed != 1 {
		t.Errorf("expected seed 1, got %d", cfg.Stage.Seed)
	}
	if cfg.Stage.FrameRate != 25 {
		t.Errorf("expected frame rate 25, got %f", cfg.Stage.FrameRate)
	}
	if cfg.Stage.Ring.SegmentCount != 8 {
		t.Errorf("expected 8 ring segments, got %d", cfg.Stage.Ring.SegmentCount)
	}
	if cfg.Stage.Bounce.Restitution != 0.72 {
		t.Errorf("expected restitution 0.72, got %f", cfg.Stage.Bounce.Restitution)
	}

	// Test camera defaults
	if cfg.Camera.Mode != "locked" {
		t.Errorf("expected camera mode 'locked', got %s", cfg.Camera.Mode)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

stage:
  layout: "ring"
  ball_mode: "drop"
  seed: 42
  frame_rate: 30
  ring:
    segment_count: 12
    loop_radius: 8
  bounce:
    initial_height: 6
    restitution: 0.8

camera:
  mode: "orbit"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Stage.Layout != "ring" {
		t.Errorf("expected layout 'ring', got %s", cfg.Stage.Layout)
	}
	if cfg.Stage.BallMode != "drop" {
		t.Errorf("expected ball mode 'drop', got %s", cfg.Stage.BallMode)
	}
	if cfg.Stage.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Stage.Seed)
	}
	if cfg.Stage.Ring.SegmentCount != 12 {
		t.Errorf("expected 12 ring segments, got %d", cfg.Stage.Ring.SegmentCount)
	}
	if cfg.Stage.Ring.LoopRadius != 8 {
		t.Errorf("expected loop radius 8, got %f", cfg.Stage.Ring.LoopRadius)
	}
	if cfg.Stage.Bounce.Restitution != 0.8 {
		t.Errorf("expected restitution 0.8, got %f", cfg.Stage.Bounce.Restitution)
	}
	// Untouched keys keep their defaults.
	if cfg.Stage.Bounce.SquashStrength != 0.3 {
		t.Errorf("expected squash strength 0.3, got %f", cfg.Stage.Bounce.SquashStrength)
	}

	if cfg.Camera.Mode != "orbit" {
		t.Errorf("expected camera mode 'orbit', got %s", cfg.Camera.Mode)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Stage.Seed = 77
	cfg.Stage.Layout = "ring"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Stage.Seed != 77 {
		t.Errorf("round-tripped seed = %d, want 77", loaded.Stage.Seed)
	}
	if loaded.Stage.Layout != "ring" {
		t.Errorf("round-tripped layout = %s, want ring", loaded.Stage.Layout)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 99
			},
			verify: func(cfg *Config) {
				if cfg.Stage.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Stage.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
		{
			name: "layout and ball flags",
			setup: func() {
				*flagLayout = "ring"
				*flagBall = "drop"
			},
			verify: func(cfg *Config) {
				if cfg.Stage.Layout != "ring" {
					t.Errorf("expected layout 'ring', got %s", cfg.Stage.Layout)
				}
				if cfg.Stage.BallMode != "drop" {
					t.Errorf("expected ball mode 'drop', got %s", cfg.Stage.BallMode)
				}
			},
			teardown: func() {
				*flagLayout = ""
				*flagBall = ""
			},
		},
		{
			name: "orbit flag",
			setup: func() {
				*flagOrbit = true
			},
			verify: func(cfg *Config) {
				if cfg.Camera.Mode != "orbit" {
					t.Errorf("expected camera mode 'orbit', got %s", cfg.Camera.Mode)
				}
			},
			teardown: func() {
				*flagOrbit = false
			},
		},
		{
			name: "window size flags",
			setup: func() {
				*flagWidth = 1280
				*flagHeight = 720
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
					t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}
