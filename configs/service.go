package configs

type ServiceConfig struct {
	HTTPPort    string   `mapstructure:"http_port"`
	ServiceName string   `mapstructure:"service_name"`
	BaseURL     string   `mapstructure:"base_url"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}
