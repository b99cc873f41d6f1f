// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Sunrise alarm with persistence, pan/zoom dial transform
// 0.2.0 - Moon ephemeris, moonrise/moonset solver, almanac view
// 0.1.0 - Initial release: dial view, phase classification, headless modes
