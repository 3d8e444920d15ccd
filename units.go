package oifits

// Unit is the physical unit attached to a keyword or column
type Unit int

const (
	// NoUnit marks dimensionless or textual members
	NoUnit Unit = iota
	// UnitMeter is the FITS "m" unit
	UnitMeter
	// UnitSecond is the FITS "s" unit
	UnitSecond
	// UnitDegree is the FITS "deg" unit
	UnitDegree
	// UnitYear is the FITS "year" unit, used for equinoxes
	UnitYear
	// UnitMJD is the modified Julian day
	UnitMJD
	// UnitMeterPerSecond is the FITS "m/s" unit
	UnitMeterPerSecond
	// UnitDegreePerYear is the FITS "deg/year" unit
	UnitDegreePerYear
	// UnitPerRad is the inverse radian, used for spatial frequencies
	UnitPerRad
)

var unitNames = [...]string{"", "m", "s", "deg", "year", "day", "m/s", "deg/year", "rad-1"}

// String returns the FITS TUNIT representation of this Unit
func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return ""
	}
	return unitNames[u]
}

// ParseUnit returns the Unit matching a FITS TUNIT string
func ParseUnit(s string) (Unit, bool) {
	switch s {
	case "meters", "meter":
		return UnitMeter, true
	case "sec", "seconds":
		return UnitSecond, true
	case "degrees":
		return UnitDegree, true
	case "mjd", "MJD":
		return UnitMJD, true
	}
	for i, n := range unitNames {
		if n == s {
			return Unit(i), true
		}
	}
	return NoUnit, false
}
