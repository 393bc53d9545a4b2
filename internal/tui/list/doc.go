// Package listview provides a small windowed cursor list for Bubble Tea
// pickers, such as the column visibility chooser.
package listview
