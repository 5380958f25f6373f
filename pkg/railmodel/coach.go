package railmodel

import "strconv"

type Coach struct {
	Number       string     `groups:"basic"`
	Class        CoachClass `groups:"basic"`
	LoadingLevel *int       `groups:"detailed"`

	Toilet *ToiletStatus `groups:"detailed"`
}

type CoachClass string

const (
	CoachClassFirst    CoachClass = "First"
	CoachClassStandard CoachClass = "Standard"
	CoachClassMixed    CoachClass = "Mixed"
)

type ToiletStatus struct {
	Available bool       `groups:"detailed"`
	Kind      ToiletKind `groups:"detailed"`
}

type ToiletKind string

const (
	ToiletKindStandard   ToiletKind = "Standard"
	ToiletKindAccessible ToiletKind = "Accessible"
	ToiletKindNone       ToiletKind = "None"
)

const MaxLoadingLevel = 3

// PlaceholderCoaches numbers length standard class coaches from 1 with no loading or toilet data
func PlaceholderCoaches(length int) []Coach {
	if length <= 0 {
		return nil
	}

	coaches := make([]Coach, 0, length)
	for i := 1; i <= length; i++ {
		coaches = append(coaches, Coach{
			Number: strconv.Itoa(i),
			Class:  CoachClassStandard,
		})
	}

	return coaches
}

// LoadingLevelFromPercentage buckets a 0-100 loading figure into levels 0-3
func LoadingLevelFromPercentage(percentage int) int {
	if percentage <= 0 {
		return 0
	}
	if percentage >= 100 {
		return MaxLoadingLevel
	}

	return (percentage - 1) / 25
}
