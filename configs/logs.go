package configs

type LogsConfig struct {
	LogPath    string `mapstructure:"log_path"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	StdoutOnly bool   `mapstructure:"stdout_only"`
}
