package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

// JWTConfig хранит единый статический секрет подписи.
// TTL у токенов нет: выданный токен живёт, пока не сменится секрет.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type WebhookConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type TTL struct {
	S3AndRedis int `yaml:"s3_and_redis"`
}
