package railmodel

import (
	"fmt"
	"strings"
)

// Station is identified by its three letter CRS code
type Station struct {
	ID   string `groups:"basic"`
	Name string `groups:"basic"`
}

// NewStation normalises the CRS code to upper case and rejects anything that is not three letters
func NewStation(crs string, name string) (Station, error) {
	id := strings.ToUpper(strings.TrimSpace(crs))

	if !IsValidCRS(id) {
		return Station{}, fmt.Errorf("invalid CRS code %q", crs)
	}

	return Station{ID: id, Name: strings.TrimSpace(name)}, nil
}

func IsValidCRS(crs string) bool {
	if len(crs) != 3 {
		return false
	}

	for _, c := range crs {
		if c < 'A' || c > 'Z' {
			return false
		}
	}

	return true
}
