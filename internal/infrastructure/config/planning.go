package config

// PlanningConfig holds production planning configuration
type PlanningConfig struct {
	// Production runs allowed per building instance when no explicit limits
	// are given
	RunsPerInstance int `mapstructure:"runs_per_instance" validate:"min=1"`
}
