package settings

type Config struct {
	Batcher Batcher `mapstructure:"batcher" yaml:"batcher"`
	Logger  Logger  `mapstructure:"logger" yaml:"logger"`
	Kafka   Kafka   `mapstructure:"kafka" yaml:"kafka"`
	Redis   Redis   `mapstructure:"redis" yaml:"redis"`
}

// Batcher is the configuration for a keyed batcher
type Batcher struct {
	WaitForMs int `mapstructure:"wait_for_ms" yaml:"wait_for_ms" validate:"gt=0"` // Milliseconds of quiet before delivery
	Shards    int `mapstructure:"shards" yaml:"shards" validate:"gte=0"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`   // Days
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Kafka is the configuration for Kafka
type Kafka struct {
	Brokers         []string `mapstructure:"brokers" yaml:"brokers" validate:"omitempty,dive,hostname_port"`
	Topic           string   `mapstructure:"topic" yaml:"topic"`
	MaxMessageBytes int      `mapstructure:"max_message_bytes" yaml:"max_message_bytes" validate:"gte=0"` // Bytes
	Timeout         int      `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`                     // Seconds
	MaxRetries      int      `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`             // Number of retries
	RetryBackoff    int      `mapstructure:"retry_backoff" yaml:"retry_backoff" validate:"gte=0"`         // Milliseconds
}

// Redis is the configuration for Redis
type Redis struct {
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Password        string `mapstructure:"password" yaml:"password"`
	Database        int    `mapstructure:"database" yaml:"database" validate:"gte=0"`
	KeyPrefix       string `mapstructure:"key_prefix" yaml:"key_prefix"`
	TTL             int    `mapstructure:"ttl" yaml:"ttl" validate:"gte=0"` // Seconds, 0 keeps lists forever
	PoolSize        int    `mapstructure:"pool_size" yaml:"pool_size" validate:"gte=0"`
	MinIdleConns    int    `mapstructure:"min_idle_conns" yaml:"min_idle_conns" validate:"gte=0"`
	PoolTimeout     int    `mapstructure:"pool_timeout" yaml:"pool_timeout" validate:"gte=0"`
	DialTimeout     int    `mapstructure:"dial_timeout" yaml:"dial_timeout" validate:"gte=0"`
	ReadTimeout     int    `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gte=0"`
	MaxRetries      int    `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff" yaml:"max_retry_backoff" validate:"gte=0"`
	MinRetryBackoff int    `mapstructure:"min_retry_backoff" yaml:"min_retry_backoff" validate:"gte=0"`
}
