package domain

const (
	kgToLb = 2.2046226218
	// 1 nmol/L of testosterone is 28.84 ng/dL.
	testosteroneNgdlPerNmol = 28.84
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return v * kgToLb
	}
	if from == "lb" && to == "kg" {
		return v / kgToLb
	}
	return v
}

// ConvertTestosterone converts a serum testosterone value between "nmol/L"
// and "ng/dL". The metric engine only accepts nmol/L; callers holding ng/dL
// readings convert before building a LabEntry.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertTestosterone(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "ng/dL" && to == "nmol/L" {
		return v / testosteroneNgdlPerNmol
	}
	if from == "nmol/L" && to == "ng/dL" {
		return v * testosteroneNgdlPerNmol
	}
	return v
}
