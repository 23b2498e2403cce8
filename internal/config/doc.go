// Package config provides configuration structures and utilities for numstat.
// It defines report format and precision settings, history storage location,
// and loading of the optional .numstat YAML file.
package config
