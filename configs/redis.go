package configs

type RedisConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Database  int      `mapstructure:"database"`
	TLS       bool     `mapstructure:"tls"`
}
