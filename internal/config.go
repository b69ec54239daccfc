package internal

import (
	"fmt"
	"time"
)

type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=0.0.0.0"`
	GRPCPort             int           `env:"GRPC_PORT,default=50051"`
	HTTPPort             int           `env:"HTTP_PORT,default=8080"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	MessagePassphrase    string        `env:"MESSAGE_PASSPHRASE,required=true"`
	JWTSecret            string        `env:"JWT_SECRET,required=true"`
	JWTIssuer            string        `env:"JWT_ISSUER,default=direct-chat"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	DecryptConcurrency   int           `env:"DECRYPT_CONCURRENCY,default=0"`
	RedisAddr            string        `env:"REDIS_ADDR"`
	RedisChannel         string        `env:"REDIS_CHANNEL,default=dm:notify"`
}

// Validate catches the values go-env accepts but the server cannot run with.
func (c Config) Validate() error {
	if c.SinkTimeout <= 0 {
		return fmt.Errorf("SINK_TIMEOUT must be positive, got %s", c.SinkTimeout)
	}
	if c.ConnectionBufferSize <= 0 {
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	}
	if c.DecryptConcurrency < 0 {
		return fmt.Errorf("DECRYPT_CONCURRENCY must not be negative, got %d", c.DecryptConcurrency)
	}
	if c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", c.GRPCPort)
	}
	return nil
}

func (c Config) GRPCAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort) }

func (c Config) HTTPAddress() string { return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort) }
