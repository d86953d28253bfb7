package config

type Config interface {
	EnvConfig
	UpstreamConfig
	SecurityConfig
}

type mainConfig struct {
	EnvVars
	Upstream
	Security
}

func New() Config {
	return mainConfig{}
}
