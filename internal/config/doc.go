// Package config manages user-level settings stored at ~/.modgen/config.yaml.
// Settings supply the defaults offered by the generator: publisher, supported
// FreePBX release, license, category, version and log level. Every key can
// also be set through a MODGEN_-prefixed environment variable.
package config
