package units

import "testing"

func TestIsValidScale(t *testing.T) {
	for _, scale := range ValidScales {
		if !IsValidScale(scale) {
			t.Errorf("IsValidScale(%q) = false", scale)
		}
	}
	if IsValidScale("PhotonEnergy") {
		t.Error("IsValidScale accepted an unknown scale")
	}
}

func TestEnergyConversionRoundTrip(t *testing.T) {
	const workfunction, photon = 4.5, 21.2

	binding := ToBinding(20.0, workfunction, photon)
	if got := ToKinetic(binding, workfunction, photon); got != 20.0 {
		t.Errorf("round trip = %g, want 20", got)
	}

	// A kinetic energy equal to photon - workfunction sits at the Fermi
	// level: zero binding energy.
	if got := ToBinding(photon-workfunction, workfunction, photon); got != 0 {
		t.Errorf("Fermi-level binding energy = %g, want 0", got)
	}
}
