// Package report writes the artifacts of a placement run: the per-frame
// placement log consumed by the capture loop, a viewport coverage plot per
// camera, and an interactive 3D scatter of the sequence.
package report
