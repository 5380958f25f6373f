package ldbws

import "fmt"

// Namespaces used by the 2021-11-01 LDBWS responses, named after the prefixes the
// service emits
const (
	NamespaceSOAP = "http://schemas.xmlsoap.org/soap/envelope/"
	NamespaceLDB  = "http://thalesgroup.com/RTTI/2021-11-01/ldb/"
	NamespaceLT   = "http://thalesgroup.com/RTTI/2012-01-13/ldb/types"
	NamespaceLT4  = "http://thalesgroup.com/RTTI/2015-11-27/ldb/types"
	NamespaceLT5  = "http://thalesgroup.com/RTTI/2016-02-16/ldb/types"
	NamespaceLT7  = "http://thalesgroup.com/RTTI/2017-10-01/ldb/types"
	NamespaceLT8  = "http://thalesgroup.com/RTTI/2021-11-01/ldb/types"
)

type SOAPFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
}

// A fault delivered with a 200 status is reported as a decode failure
func (f *SOAPFault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.FaultCode, f.FaultString)
}

// ServiceLocations is the lt4 location list used for origins and destinations
type ServiceLocations struct {
	Location []ServiceLocation `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types location"`
}

type ServiceLocation struct {
	LocationName string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types locationName"`
	Crs          string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types crs"`
	Via          *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types via"`
}

func (l *ServiceLocations) validate(path string) error {
	if len(l.Location) == 0 {
		return missingElement(path + "/lt4:location")
	}

	for _, location := range l.Location {
		if err := location.validate(path + "/lt4:location"); err != nil {
			return err
		}
	}

	return nil
}

func (l *ServiceLocation) validate(path string) error {
	if l.LocationName == "" {
		return missingElement(path + "/lt4:locationName")
	}
	if l.Crs == "" {
		return missingElement(path + "/lt4:crs")
	}

	return nil
}

// CallingPointLists holds one list per portion of the train, the first being the main portion
type CallingPointLists struct {
	CallingPointList []CallingPointList `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types callingPointList"`
}

type CallingPointList struct {
	ServiceType           string `xml:"serviceType,attr"`
	ServiceChangeRequired bool   `xml:"serviceChangeRequired,attr"`
	AssocIsCancelled      bool   `xml:"assocIsCancelled,attr"`

	CallingPoint []CallingPoint `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types callingPoint"`
}

type CallingPoint struct {
	LocationName string  `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types locationName"`
	Crs          string  `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types crs"`
	St           string  `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types st"`
	Et           *string `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types et"`
	At           *string `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types at"`
	Platform     *string `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types platform"`
	IsCancelled  bool    `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types isCancelled"`
	Length       *int    `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types length"`
	DelayReason  *string `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types delayReason"`
	CancelReason *string `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types cancelReason"`
}

func (c *CallingPointLists) validate(path string) error {
	for listIndex, list := range c.CallingPointList {
		for pointIndex, point := range list.CallingPoint {
			pointPath := fmt.Sprintf("%s/lt8:callingPointList[%d]/lt8:callingPoint[%d]", path, listIndex, pointIndex)

			if point.LocationName == "" {
				return missingElement(pointPath + "/lt8:locationName")
			}
			if point.Crs == "" {
				return missingElement(pointPath + "/lt8:crs")
			}
			if point.St == "" {
				return missingElement(pointPath + "/lt8:st")
			}
		}
	}

	return nil
}

// Flatten concatenates every list in order
func (c *CallingPointLists) Flatten() []CallingPoint {
	if c == nil {
		return nil
	}

	var points []CallingPoint
	for _, list := range c.CallingPointList {
		points = append(points, list.CallingPoint...)
	}

	return points
}

// Main returns the calling points of the first (main) portion
func (c *CallingPointLists) Main() []CallingPoint {
	if c == nil || len(c.CallingPointList) == 0 {
		return nil
	}

	return c.CallingPointList[0].CallingPoint
}

type FormationData struct {
	AvgLoading *int           `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types avgLoading"`
	Coaches    *ArrayOfCoaches `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types coaches"`
}

type ArrayOfCoaches struct {
	Coach []CoachData `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types coach"`
}

type CoachData struct {
	Number     string              `xml:"number,attr"`
	CoachClass string              `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types coachClass"`
	Toilet     *ToiletAvailability `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types toilet"`
	Loading    *int                `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types loading"`
}

type ToiletAvailability struct {
	Status string `xml:"status,attr"`
	Type   string `xml:",chardata"`
}

func (f *FormationData) validate(path string) error {
	if f.Coaches == nil {
		return nil
	}

	for index, coach := range f.Coaches.Coach {
		if coach.Number == "" {
			return missingElement(fmt.Sprintf("%s/lt4:coaches/lt4:coach[%d]/@number", path, index))
		}
	}

	return nil
}
