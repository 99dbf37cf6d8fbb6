// Package stress computes rotational stress demand for a schematic.
package stress

// loadFactor leaves headroom over the nominal per-machine draw so a network
// sized from an estimate does not run at exactly its capacity.
const loadFactor = 1.25

// Estimate returns the total stress capacity a contraption of the given
// machine count should be powered for, assuming each machine draws
// baseStress at full speed. Pure and deterministic.
func Estimate(machines int, baseStress float64) float64 {
	return float64(machines) * baseStress * loadFactor
}
