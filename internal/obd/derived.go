package obd

const (
	stoichiometricAfr = 14.7
	// grams of gasoline per US gallon
	gramsPerGallon = 2789.0
)

// computeDerived evaluates a derived parameter from the current readings.
// The second return value is false while a required input is missing.
func computeDerived(id string, get func(string) (float64, bool), tankCapacity float64) (float64, bool) {
	switch id {
	case "FUEL_ECONOMY":
		return computeFuelEconomy(get)
	case "DISTANCE_TO_EMPTY":
		return computeDistanceToEmpty(get, tankCapacity)
	case "IGNITION_TIMING":
		// same PID as timing advance, exposed under both names
		return get("TIMING_ADVANCE")
	default:
		return 0, false
	}
}

// computeFuelEconomy estimates instantaneous fuel economy in mpg from
// vehicle speed and the mass air flow derived fuel burn rate.
func computeFuelEconomy(get func(string) (float64, bool)) (float64, bool) {
	speed, ok := get("SPEED")
	if !ok {
		return 0, false
	}
	maf, ok := get("MAF")
	if !ok || maf <= 0 {
		return 0, false
	}

	afr := stoichiometricAfr
	if ratio, ok := get("COMMANDED_EQUIV_RATIO"); ok && ratio > 0 {
		afr = ratio
	}

	// g/s of air -> g/s of fuel -> gallons per hour
	fuelGramsPerSecond := maf / afr
	gallonsPerHour := fuelGramsPerSecond * 3600.0 / gramsPerGallon
	if gallonsPerHour <= 0 {
		return 0, false
	}

	// idling: burning fuel while standing still is 0 mpg, not NaN
	if speed < 1.0 {
		return 0, true
	}

	return speed / gallonsPerHour, true
}

// computeDistanceToEmpty estimates the remaining range in miles from the
// fuel level, tank capacity and current fuel economy.
func computeDistanceToEmpty(get func(string) (float64, bool), tankCapacity float64) (float64, bool) {
	level, ok := get("FUEL_LEVEL")
	if !ok {
		return 0, false
	}
	economy, ok := get("FUEL_ECONOMY")
	if !ok {
		return 0, false
	}

	remainingGallons := level / 100.0 * tankCapacity
	return remainingGallons * economy, true
}
