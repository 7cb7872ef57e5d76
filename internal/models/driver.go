package models

import (
	"fmt"
	"strings"
)

// DriverType represents the Windows driver model the crate targets
type DriverType string

const (
	DriverWDM  DriverType = "WDM"
	DriverKMDF DriverType = "KMDF"
	DriverUMDF DriverType = "UMDF"
)

// AllDriverTypes returns the supported driver types in display order
func AllDriverTypes() []DriverType {
	return []DriverType{DriverWDM, DriverKMDF, DriverUMDF}
}

// IsValid checks if the driver type is valid
func (d DriverType) IsValid() bool {
	switch d {
	case DriverWDM, DriverKMDF, DriverUMDF:
		return true
	default:
		return false
	}
}

// String returns the string representation of DriverType
func (d DriverType) String() string {
	return string(d)
}

// NormalizeDriverType trims and upper-cases raw user input
func NormalizeDriverType(s string) DriverType {
	return DriverType(strings.ToUpper(strings.TrimSpace(s)))
}

// ParseDriverType parses a string into a DriverType
func ParseDriverType(s string) (DriverType, error) {
	dt := NormalizeDriverType(s)
	if !dt.IsValid() {
		return "", fmt.Errorf("invalid driver type: %s (must be WDM, KMDF, or UMDF)", dt)
	}
	return dt, nil
}
