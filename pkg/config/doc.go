// Package config provides a type-safe, generic way to load application
// configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11` to
// deliver a small API that:
//
//   - Loads values from one or multiple `.env` files (falling back to the
//     default `.env` in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Parses an explicit variable map with LoadFrom, leaving the process
//     environment untouched.
//   - Exposes helpers that panic on failure (`MustLoadEnv`, `MustLoad`) for
//     scenarios where configuration is critical.
//
// # Usage
//
// Create a struct describing your configuration and annotate its fields with
// `env` tags:
//
//	type MailConfig struct {
//	    APIKey  string        `env:"RESEND_API_KEY,required"`
//	    Sender  string        `env:"SENDER_EMAIL,required"`
//	    Timeout time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
//	}
//
// Populate it from the environment:
//
//	import "github.com/dmitrymomot/sitrep/pkg/config"
//
//	func main() {
//	    var cfg MailConfig
//	    if err := config.Load(&cfg); err != nil {
//	        log.Fatalf("parsing env: %v", err)
//	    }
//	}
//
// In tests, pass the variables directly:
//
//	err := config.LoadFrom(&cfg, map[string]string{"RESEND_API_KEY": "re_test"})
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`  – failed to parse env vars into struct.
//   - `ErrLoadingEnvFile` – an explicitly requested .env file could not be read.
//   - `ErrNilPointer`     – nil pointer passed to `Load`/`LoadFrom`/`MustLoad`.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
