// Package config loads squeezer settings.
//
// Values come from the environment, optionally seeded from a .env file, and
// fall back to the `default` struct tags of each section:
//
//	pulp      Pulp API connection and task polling
//	server    HTTP listener and API key
//	log       zap level and encoding
//	database  optional invocation history (mysql, sqlite)
//	storage   optional result archive (S3, MinIO)
//
// Nested keys map to upper-case env names joined by underscores, so
// pulp.base_url is read from PULP_BASE_URL.
package config
