// Package file persists user settings as TOML in the config directory,
// ~/.kb/config.toml unless --config-dir says otherwise. Dotted keys are
// written as nested tables.
package file
