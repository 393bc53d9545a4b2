// Package tui renders portal tables as Bubble Tea programs. TableModel
// drives a grid.Table from a dataset.Fetcher and PortalModel frames it with
// the signed-in session.
package tui
