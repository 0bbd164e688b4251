// Package config loads typed configuration structs from environment
// variables (with optional .env file support) and caches each type so
// the whole process shares one view of its configuration.
package config
