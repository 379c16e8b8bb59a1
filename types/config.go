package types

// Config defines the configuration of a sunbind runtime. It can be read from
// TOML or YAML; see sunbind.LoadConfig.
type Config struct {
	Log        LogConfig        `toml:"log" yaml:"log" json:"log"`
	Metrics    MetricsConfig    `toml:"metrics" yaml:"metrics" json:"metrics"`
	Checkpoint CheckpointConfig `toml:"checkpoint" yaml:"checkpoint" json:"checkpoint"`
	Engine     EngineConfig     `toml:"engine" yaml:"engine" json:"engine"`
}

// LogConfig configures the zap logger. File enables a rotating JSON log next
// to the console output.
type LogConfig struct {
	Level      string `toml:"level" yaml:"level" json:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `toml:"file" yaml:"file" json:"file,omitempty"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb" json:"max_size_mb,omitempty" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups" json:"max_backups,omitempty" validate:"gte=0"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days" json:"max_age_days,omitempty" validate:"gte=0"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled" json:"enabled"`
	Listen  string `toml:"listen" yaml:"listen" json:"listen,omitempty" validate:"required_if=Enabled true,omitempty,hostname_port"`
}

// CheckpointConfig selects where recorded trajectories go. Every stores one
// checkpoint per Every accepted steps.
type CheckpointConfig struct {
	Backend string `toml:"backend" yaml:"backend" json:"backend" validate:"oneof=memdb goleveldb"`
	Dir     string `toml:"dir" yaml:"dir" json:"dir,omitempty" validate:"required_if=Backend goleveldb"`
	Name    string `toml:"name" yaml:"name" json:"name" validate:"required"`
	Every   int    `toml:"every" yaml:"every" json:"every" validate:"gte=1"`
}

type EngineConfig struct {
	StepSize     float64 `toml:"step_size" yaml:"step_size" json:"step_size" validate:"gt=0"`
	MaxRetries   int     `toml:"max_retries" yaml:"max_retries" json:"max_retries" validate:"gte=0"`
	NlsMaxIters  int     `toml:"nls_max_iters" yaml:"nls_max_iters" json:"nls_max_iters" validate:"gte=1"`
	NlsTolerance float64 `toml:"nls_tolerance" yaml:"nls_tolerance" json:"nls_tolerance" validate:"gt=0"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9464",
		},
		Checkpoint: CheckpointConfig{
			Backend: "memdb",
			Name:    "trajectory",
			Every:   1,
		},
		Engine: EngineConfig{
			StepSize:     1e-3,
			MaxRetries:   5,
			NlsMaxIters:  20,
			NlsTolerance: 1e-10,
		},
	}
}
