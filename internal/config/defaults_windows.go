//go:build windows

package config

// Default install location of the poppler release builds for Windows.
const defaultPopplerPath = `C:\Program Files\poppler\Library\bin`
