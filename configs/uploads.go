package configs

type UploadsConfig struct {
	Dir string `mapstructure:"dir"`
}
