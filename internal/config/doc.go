// Package config loads hurricane's startup configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/hurricane/config.toml
//  3. If the file doesn't exist, start from Default()
//  4. Apply HURRICANE_ENV and HURRICANE_API_URL from the environment
//
// LoadDotEnv can populate those variables from a .env file first; values
// already present in the environment are never overwritten.
//
// # TOML Format
//
//	environment = "production"        # or "development"
//	api_base_url = ""                 # explicit origin, wins over environment
//	request_timeout = ""              # empty: no client-side timeout
//	lifecycle_toasts = true           # "started"/"completed" toasts per call
//	redirect_delay = "4s"
//	poll_interval = "1m"
//	log_file = "~/.local/state/hurricane/hurricane.log"
//	session_file = "~/.local/state/hurricane/session.toml"
//
//	[toast]
//	mount = "10ms"
//	display = "3s"
//	exit = "300ms"
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Environments
//
//   - development: http://localhost:8080
//   - production:  http://api.hurricane.softwrhq.com
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, malformed or
// negative durations and unknown environment names. A missing file is not
// an error.
package config
