// filepath: internal/cli/config_loader.go
package cli

import (
	"errors"
	"fmt"
	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MCAT_PORT.
const EnvPrefix = "MCAT"

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// cfgFile is the resolved path of the TOML file.
	cfgFile string

	// dotEnvFile is loaded into the environment before overrides are read, if present.
	dotEnvFile = ".env"
)

// registerFlags defines the flags shared by every command.
func registerFlags(flags *pflag.FlagSet) {
	flags.String("config_path", "config.toml", "Path to the base configuration file. (Env: MCAT_CONFIG_PATH)")
	flags.String("log-level", "", "Logging level (trace, debug, info, warn, error). (Env: MCAT_LOG_LEVEL)")
	flags.String("host", "", "Interface the HTTP server binds to. (Env: MCAT_HOST)")
	flags.Int("port", 0, "Port for the HTTP server. (Env: MCAT_PORT)")
	flags.Bool("audit-enabled", false, "Enable detailed audit logging. (Env: MCAT_AUDIT_ENABLED=true)")
	flags.String("db-driver", "", "Store driver: sqlite or jsonfile. (Env: MCAT_DB_DRIVER)")
	flags.String("db-path", "", "Path of the SQLite database or JSON document. (Env: MCAT_DB_PATH)")
	flags.String("upload-dir", "", "Directory for uploaded images. (Env: MCAT_UPLOAD_DIR)")
	flags.String("max-upload-size", "", "Max size of one uploaded image (e.g. '10MB'). (Env: MCAT_MAX_UPLOAD_SIZE)")
	flags.String("cleanup-interval", "", "How often orphaned images are swept (e.g. '1h', '1d', '0' disables). (Env: MCAT_CLEANUP_INTERVAL)")
}

// newViper binds the command's flags and the MCAT_* environment.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			logging.Log.Warnf("Failed to bind flag '%s': %v", f.Name, err)
		}
	})
	return v
}

// initializeConfig loads the TOML file and applies env and flag overrides.
// Precedence: defaults < file < env (.env included) < flags.
func initializeConfig(cmd *cobra.Command) error {
	if _, err := os.Stat(dotEnvFile); err == nil {
		if err := godotenv.Load(dotEnvFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
		}
	}

	v := newViper(cmd)
	cfgFile = v.GetString("config_path")
	if cfgFile == "" {
		cfgFile = "config.toml"
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	applyOverrides(cfg, v)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)
	return nil
}

// applyOverrides copies every explicitly set env var or flag into c, then
// fills the remaining defaults.
func applyOverrides(c *config.Config, v *viper.Viper) {
	if v.IsSet("host") {
		c.Server.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		c.Server.Port = v.GetInt("port")
	}
	if v.IsSet("log-level") {
		c.Logging.Level = v.GetString("log-level")
	}
	if v.IsSet("audit-enabled") {
		c.Logging.AuditEnabled = v.GetBool("audit-enabled")
	}
	if v.IsSet("db-driver") {
		c.Database.Driver = v.GetString("db-driver")
	}
	if v.IsSet("db-path") {
		c.Database.Path = v.GetString("db-path")
	}
	if v.IsSet("upload-dir") {
		c.Storage.UploadDir = v.GetString("upload-dir")
	}
	if v.IsSet("max-upload-size") {
		c.Server.MaxUploadSize = v.GetString("max-upload-size")
	}
	if v.IsSet("cleanup-interval") {
		c.Storage.CleanupInterval = v.GetString("cleanup-interval")
	}

	// --- Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
