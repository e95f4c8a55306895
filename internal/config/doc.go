// Package config provides configuration loading for vrecon.
//
// Values come from, in increasing precedence: built-in defaults, a config
// file (vrecon.yaml, vrecon.yml or vrecon.json in the working directory, or
// an explicit path), VRECON_* environment variables, and bound command-line
// flags. Nested keys map to environment variables with "." replaced by "_".
//
// # Configuration File Structure
//
//	log:
//	  level: debug
//	server:
//	  addr: ":8080"
//	  read_limit: 1048576
//	  shutdown_timeout: 5s
//	metrics:
//	  enabled: true
//	  namespace: vrecon
//	output:
//	  format: json
//	  color: false
//
// # Usage
//
//	cfg, err := config.Load(config.Options{Flags: cmd.Flags()})
//	if err != nil {
//	    return err
//	}
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.Level}))
package config
