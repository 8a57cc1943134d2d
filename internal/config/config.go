package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Both binaries (API server and batch
// worker) load the same Config once at startup; nothing is read from the
// environment after that.
type Config struct {
    Env        string // application environment (e.g. "dev", "prod")
    Port       string // HTTP port the API listens on
    DBUser     string // database username
    DBPass     string // database password (optional)
    DBHost     string // database host address
    DBPort     string // database port number
    DBName     string // database name
    JWTSecret  string // secret used to sign access tokens
    BcryptCost int    // bcrypt cost for password hashing
    AMQPURL    string // optional RabbitMQ URL for ticket-closed events ("" disables)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:        must("APP_ENV"),
        Port:       must("APP_PORT"),
        DBUser:     must("DATABASE_USER"),
        DBPass:     os.Getenv("DATABASE_PASSWORD"), // empty allowed
        DBHost:     must("DATABASE_HOST"),
        DBPort:     must("DATABASE_PORT"),
        DBName:     must("DATABASE_NAME"),
        JWTSecret:  must("JWT_SECRET"),
        BcryptCost: mustInt("BCRYPT_COST"),
        AMQPURL:    os.Getenv("RABBITMQ_URL"), // empty disables event publishing
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
