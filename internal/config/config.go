// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Stage    StageConfig    `yaml:"stage"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
}

// StageConfig holds everything the stage is generated from.
type StageConfig struct {
	// Layout picks the staircase: "flights" is the classic four-flight
	// illusion, "ring" the circular loop.
	Layout string `yaml:"layout"`

	// BallMode picks the animation: "path" hops down the stair tops,
	// "drop" is a decaying in-place bounce.
	BallMode string `yaml:"ball_mode"`

	// Seed drives all randomness (frame placement, emissive colors); the
	// same seed reproduces the same stage.
	Seed int64 `yaml:"seed"`

	FrameRate  float32 `yaml:"frame_rate"`
	Duration   float32 `yaml:"duration"` // seconds per animation loop
	BallRadius float32 `yaml:"ball_radius"`

	Ring   RingConfig   `yaml:"ring"`
	Bounce BounceConfig `yaml:"bounce"`
	Path   PathConfig   `yaml:"path"`
}

// RingConfig parameterizes the circular staircase loop.
type RingConfig struct {
	SegmentCount int     `yaml:"segment_count"`
	StepHeight   float32 `yaml:"step_height"`
	StepDepth    float32 `yaml:"step_depth"`
	LoopRadius   float32 `yaml:"loop_radius"`
}

// BounceConfig parameterizes the analytic drop bounce.
type BounceConfig struct {
	InitialHeight   float32 `yaml:"initial_height"`
	Gravity         float32 `yaml:"gravity"`
	Restitution     float32 `yaml:"restitution"`
	HorizontalSpeed float32 `yaml:"horizontal_speed"`
	SquashStrength  float32 `yaml:"squash_strength"`
	MinBounceHeight float32 `yaml:"min_bounce_height"`
	MaxFrames       int     `yaml:"max_frames"`
}

// PathConfig parameterizes the hop along the stair tops.
type PathConfig struct {
	BounceHeight float32 `yaml:"bounce_height"`
	BounceFactor float32 `yaml:"bounce_factor"`
	SquashFactor float32 `yaml:"squash_factor"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	// Mode is "locked" for the tuned perspective preset or "orbit" for
	// free viewing.
	Mode string `yaml:"mode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      960,
			Height:     540,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ShowFPS:    false,
		},
		Stage: StageConfig{
			Layout:     "flights",
			BallMode:   "path",
			Seed:       1,
			FrameRate:  25,
			Duration:   10,
			BallRadius: 1,
			Ring: RingConfig{
				SegmentCount: 8,
				StepHeight:   1.0,
				StepDepth:    1.0,
				LoopRadius:   5.0,
			},
			Bounce: BounceConfig{
				InitialHeight:   10,
				Gravity:         25,
				Restitution:     0.72,
				HorizontalSpeed: 0,
				SquashStrength:  0.3,
				MinBounceHeight: 0.05,
			},
			Path: PathConfig{
				BounceHeight: 5,
				BounceFactor: 4,
				SquashFactor: 0.3,
			},
		},
		Camera: CameraConfig{
			Mode: "locked",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
