package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	IsProd     bool   // Is production environment
	DBDriver   string // mysql or sqlite
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	DBPath     string // SQLite file path

	JWTSecret string        // JWT secret key
	JWTTTL    time.Duration // Token and session lifetime

	RedisAddr string // Redis server address
	RedisPass string // Redis password
	RedisDB   int    // Redis database number

	StripeSecretKey string // Payment provider secret key
	ChargeAmount    int64  // Fixed charge in minor units
	ChargeCurrency  string // Charge currency

	MailServer   string // SMTP host
	MailPort     int    // SMTP port
	MailUsername string // SMTP user
	MailPassword string // SMTP password
	MailUseSSL   bool   // Implicit TLS on connect
	MailSender   string // From address

	KafkaBrokers []string // Event brokers, empty disables publishing
	KafkaTopic   string   // Event topic

	AuthRatePerMinute int // Allowed /login and /register calls per client IP per minute

	AdminUsername string // Seeded administrator
	AdminEmail    string // Seeded administrator email
	AdminPassword string // Seeded administrator password
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),     // Application port
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
		DBDriver:   getEnv("DB_DRIVER", "mysql"),   // Database driver
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"), // Database host
		DBPort:     getEnv("DB_PORT", "3306"),      // Database port
		DBName:     getEnv("DB_NAME", "hostel"),    // Database name
		DBPath:     getEnv("DB_PATH", "hostel.db"), // SQLite file

		JWTSecret: os.Getenv("JWT_SECRET"),                                   // JWT secret key
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour, // Token lifetime

		RedisAddr: getEnv("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass: os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:   getEnvInt("REDIS_DB", 0),               // Redis database number

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),                    // Payment provider key
		ChargeAmount:    int64(getEnvInt("CHARGE_AMOUNT", 500)),            // Amount in cents
		ChargeCurrency:  strings.ToLower(getEnv("CHARGE_CURRENCY", "usd")), // Currency

		MailServer:   getEnv("MAIL_SERVER", "smtp.gmail.com"),           // SMTP host
		MailPort:     getEnvInt("MAIL_PORT", 465),                       // SMTP port
		MailUsername: os.Getenv("MAIL_USERNAME"),                        // SMTP user
		MailPassword: os.Getenv("MAIL_PASSWORD"),                        // SMTP password
		MailUseSSL:   getEnv("MAIL_USE_SSL", "true") == "true",          // Implicit TLS
		MailSender:   getEnv("MAIL_SENDER", os.Getenv("MAIL_USERNAME")), // From address

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),  // Brokers
		KafkaTopic:   getEnv("KAFKA_TOPIC", "hostel-events"), // Topic

		AuthRatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", 30), // Auth rate limit

		AdminUsername: os.Getenv("ADMIN_USERNAME"), // Seeded admin
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),    // Seeded admin email
		AdminPassword: os.Getenv("ADMIN_PASSWORD"), // Seeded admin password
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

// MailEnabled reports whether SMTP credentials were provided
func (c *Config) MailEnabled() bool {
	return c.MailUsername != "" && c.MailPassword != ""
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getEnvInt parses an integer variable, falling back on absence or garbage
func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// splitList splits a comma separated list, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
