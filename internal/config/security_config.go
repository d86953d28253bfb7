package config

type SecurityConfig interface {
	GetSecureCookies() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSecureCookies reports whether session cookies should carry the
// Secure flag. Defaults to on outside of DEV so tokens are never sent
// over plain HTTP in production.
func (s Security) GetSecureCookies() bool {
	if GetEnv("SECURE_COOKIES", "") == "false" {
		return false
	}
	return EnvVars{}.GetEnv() != "DEV"
}
