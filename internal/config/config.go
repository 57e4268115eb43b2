package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time provides duration parsing for optional intervals
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The application talks to two separate MySQL
// databases: the primary store (users, plans, devices, subscriptions,
// payments) and a dedicated session store that holds only session rows.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    DBUser          string        // primary store username
    DBPass          string        // primary store password (optional)
    DBHost          string        // primary store host address
    DBPort          string        // primary store port number
    DBName          string        // primary store database name
    SessionDBUser   string        // session store username
    SessionDBPass   string        // session store password (optional)
    SessionDBHost   string        // session store host address
    SessionDBPort   string        // session store port number
    SessionDBName   string        // session store database name
    JWTSecret       string        // secret used to sign bearer tokens; startup fails when unset
    AccessTTLMin    int           // bearer token time‑to‑live in minutes
    SessionTTLHours int           // server-side session time‑to‑live in hours
    BcryptCost      int           // bcrypt cost for password hashing
    SessionSweep    time.Duration // interval for the expired-session sweeper; 0 disables it
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  In particular the
// JWT secret has no fallback: an unset secret is a startup failure, never
// a silent weak default.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),                  // environment (dev/test/prod)
        Port:            must("APP_PORT"),                 // port to bind the HTTP server
        DBUser:          must("DB_USER"),                  // primary store user
        DBPass:          os.Getenv("DB_PASS"),             // primary store password (empty allowed)
        DBHost:          must("DB_HOST"),                  // primary store host
        DBPort:          must("DB_PORT"),                  // primary store port
        DBName:          must("DB_NAME"),                  // primary store database name
        SessionDBUser:   must("SESSION_DB_USER"),          // session store user
        SessionDBPass:   os.Getenv("SESSION_DB_PASS"),     // session store password (empty allowed)
        SessionDBHost:   must("SESSION_DB_HOST"),          // session store host
        SessionDBPort:   must("SESSION_DB_PORT"),          // session store port
        SessionDBName:   must("SESSION_DB_NAME"),          // session store database name
        JWTSecret:       must("JWT_SECRET"),               // secret used for signing bearer tokens
        AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),  // TTL for bearer tokens in minutes
        SessionTTLHours: mustInt("SESSION_TTL_HOURS"),     // TTL for server-side sessions in hours
        BcryptCost:      mustInt("BCRYPT_COST"),           // bcrypt cost factor
        SessionSweep:    optDur("SESSION_SWEEP_INTERVAL"), // optional sweep interval, e.g. "1h"
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
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// optDur parses an optional duration variable.  An unset value yields zero,
// which callers treat as "disabled".  A malformed value is a configuration
// mistake and halts startup like any other bad variable.
func optDur(key string) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return 0
    }
    d, err := time.ParseDuration(v)
    if err != nil {
        log.Fatalf("invalid duration for %s: %q", key, v)
    }
    return d
}
