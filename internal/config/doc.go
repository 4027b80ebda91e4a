// Package config resolves generation options: defaults from the environment,
// validation of the final options, and the import path of the output directory.
package config
