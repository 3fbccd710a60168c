// Package config provides configuration structures and utilities for
// forumscan. It defines crawl pacing, classification thresholds, target
// site endpoints, and the optional YAML credentials file.
package config
