// Package platform provides cross-platform operations used after a project is
// generated: permission management (a no-op on Windows) and opening the
// generated folder in an editor.
package platform
