//go:build !windows

package config

// Poppler utilities are normally on $PATH on Linux and macOS.
const defaultPopplerPath = ""
