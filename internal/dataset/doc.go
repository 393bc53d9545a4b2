// Package dataset holds the demo records shown by the portals and the
// in-memory Source that plays the data owner for a grid: it searches, sorts
// and pages rows and reports the resulting pagination descriptor.
package dataset
