package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DIRECT_CHAT_ADDR points to a running server. The suites skip when it is empty.
	DirectChatAddr string `envconfig:"DIRECT_CHAT_ADDR"`
	JWTSecret      string `envconfig:"JWT_SECRET"`
	JWTIssuer      string `envconfig:"JWT_ISSUER" default:"direct-chat"`
	// Ids printed by cmd/seed
	AliceID string `envconfig:"E2E_ALICE_ID"`
	BobID   string `envconfig:"E2E_BOB_ID"`
	// E2E_DEBUG_JSON dumps full request/response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
