package config

// LoggingConfig selects the slog handler behind the shard's operation logger
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// AddSource annotates every record with the calling file and line
	AddSource bool `mapstructure:"add_source"`
}
