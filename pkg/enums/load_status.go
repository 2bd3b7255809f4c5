package enums

import "fmt"

// LoadStatus distinguishes an empty collection from a failed remote load.
type LoadStatus string

const (
	LoadStatusOK     LoadStatus = "ok"
	LoadStatusFailed LoadStatus = "failed"
)

var validLoadStatuses = []LoadStatus{
	LoadStatusOK,
	LoadStatusFailed,
}

// String implements fmt.Stringer.
func (s LoadStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LoadStatus.
func (s LoadStatus) IsValid() bool {
	for _, candidate := range validLoadStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLoadStatus converts raw input into a LoadStatus.
func ParseLoadStatus(value string) (LoadStatus, error) {
	for _, candidate := range validLoadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid load status %q", value)
}
