package config

import "time"

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"NOTEMARK_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"NOTEMARK_JWT_TOKEN_TTL" env-default:"168h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"NOTEMARK_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает продолжительность времени жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 168 * time.Hour
	}
	return duration
}
