package types

import "strings"

// Sector represents the policy sector a template is generated for
type Sector string

const (
	SectorFinance    Sector = "finance"
	SectorHealthcare Sector = "healthcare"
	SectorTravel     Sector = "travel"
)

// AllSectors returns all valid sectors
func AllSectors() []Sector {
	return []Sector{
		SectorFinance,
		SectorHealthcare,
		SectorTravel,
	}
}

// IsValid checks if the sector is valid
func (x Sector) IsValid() bool {
	switch x {
	case SectorFinance, SectorHealthcare, SectorTravel:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sector
func (x Sector) String() string {
	return string(x)
}

// ClassifySector resolves the sector mentioned in the message text.
// Closed mapping with an explicit default: unmatched text is finance.
func ClassifySector(text string) Sector {
	lowered := strings.ToLower(text)

	switch {
	case strings.Contains(lowered, "health"):
		return SectorHealthcare
	case strings.Contains(lowered, "travel"):
		return SectorTravel
	default:
		return SectorFinance
	}
}
