// Package config resolves the Render API credential and client settings.
//
// Settings are layered: built-in defaults, then an optional user config
// file (~/.config/renderctl/config.yaml), then an optional project config
// file (./.renderctl/config.yaml), then environment variables. A .env file
// in the working directory is loaded before the environment is read, and
// the real process environment always wins over .env values.
//
// The API key comes exclusively from the environment (RENDER_API_KEY),
// never from a config file, and its value is never included in error
// messages or log output.
package config
