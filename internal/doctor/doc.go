// Package doctor runs environment checks for mcpinit: the config directory
// and file, the embedded presets, and the Python toolchain and editor that
// generated projects rely on. Each check prints one status line.
package doctor
