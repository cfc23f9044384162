// ============================================================================
// meinDENKWERK (mDW) - Developer Console
// ============================================================================
//
// Package:     version
// Description: Central version management for the console components
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

// Version constants for the console components
const (
	// Console engine version
	Console = "1.0.0"

	// Wire protocol of the remote console
	Protocol = "1"

	// Component versions
	Remote = "1.0.0"
	TUI    = "1.0.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "remote":
		return Remote
	case "tui":
		return TUI
	default:
		return Console
	}
}
