// Package config loads and saves the crewhub.json workspace
// configuration.
//
// The file lives at the workspace root and is discovered by walking up
// from the working directory. Missing fields fall back to defaults;
// CREWHUB_PORT and CREWHUB_HOST environment variables override the file.
package config
