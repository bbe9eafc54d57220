// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Live transit dashboard, chart file watching, numerology compatibility
// 0.2.0 - JPL Horizons positions with retrograde detection, --ephem flag
// 0.1.0 - Initial release: aspects, ingresses, numerology card, headless output
