// Package units provides shared constants and conversions for energy
// scales used across the .xy workflow.
package units

// Energy scale constants, matching the ScanVariable: values the
// instrument writes.
const (
	KineticEnergy = "KineticEnergy"
	BindingEnergy = "BindingEnergy"
)

// ValidScales contains all recognized energy scale values.
var ValidScales = []string{KineticEnergy, BindingEnergy}

// IsValidScale checks if the given scale is a recognized energy scale.
func IsValidScale(scale string) bool {
	for _, v := range ValidScales {
		if scale == v {
			return true
		}
	}
	return false
}

// ToBinding converts a kinetic energy to binding energy given the
// effective workfunction and the photon (excitation) energy, all in eV.
// Binding energies below the Fermi level come out negative.
func ToBinding(kinetic, workfunction, photonEnergy float64) float64 {
	return kinetic + workfunction - photonEnergy
}

// ToKinetic is the inverse of ToBinding.
func ToKinetic(binding, workfunction, photonEnergy float64) float64 {
	return binding - workfunction + photonEnergy
}
