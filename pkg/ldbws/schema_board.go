package ldbws

import (
	"encoding/xml"
	"fmt"
)

// BoardEnvelope is the GetArrBoardWithDetails response. Board level fields live in the
// lt4 namespace, services in lt8 and their origins and destinations in lt5.
type BoardEnvelope struct {
	XMLName xml.Name  `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    BoardBody `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type BoardBody struct {
	Response *GetArrBoardWithDetailsResponse `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/ GetArrBoardWithDetailsResponse"`
	Fault    *SOAPFault                      `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
}

type GetArrBoardWithDetailsResponse struct {
	GetStationBoardResult *StationBoard `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/ GetStationBoardResult"`
}

type StationBoard struct {
	GeneratedAt        string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types generatedAt"`
	LocationName       string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types locationName"`
	Crs                string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types crs"`
	FilterLocationName *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types filterLocationName"`
	FilterCrs          *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types filtercrs"`
	FilterType         *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types filterType"`
	PlatformAvailable  bool    `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types platformAvailable"`

	NrccMessages *NRCCMessages `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types nrccMessages"`

	TrainServices *ArrayOfServiceItems `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types trainServices"`
}

type NRCCMessages struct {
	Message []string `xml:"http://thalesgroup.com/RTTI/2012-01-13/ldb/types message"`
}

type ArrayOfServiceItems struct {
	Service []ServiceItem `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types service"`
}

type ServiceItem struct {
	Sta *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types sta"`
	Eta *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types eta"`
	Std *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types std"`
	Etd *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types etd"`

	Platform        *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types platform"`
	Operator        string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types operator"`
	OperatorCode    string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types operatorCode"`
	IsCircularRoute bool    `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types isCircularRoute"`
	IsCancelled     bool    `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types isCancelled"`
	ServiceType     string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types serviceType"`
	Length          *int    `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types length"`
	ServiceID       string  `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types serviceID"`
	Rsid            *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types rsid"`
	CancelReason    *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types cancelReason"`
	DelayReason     *string `xml:"http://thalesgroup.com/RTTI/2015-11-27/ldb/types delayReason"`

	Origin      *ServiceLocations `xml:"http://thalesgroup.com/RTTI/2016-02-16/ldb/types origin"`
	Destination *ServiceLocations `xml:"http://thalesgroup.com/RTTI/2016-02-16/ldb/types destination"`
	Formation   *FormationData    `xml:"http://thalesgroup.com/RTTI/2016-02-16/ldb/types formation"`

	PreviousCallingPoints   *CallingPointLists `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types previousCallingPoints"`
	SubsequentCallingPoints *CallingPointLists `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types subsequentCallingPoints"`
}

func (e *BoardEnvelope) validate() error {
	if e.Body.Fault != nil {
		return e.Body.Fault
	}
	if e.Body.Response == nil {
		return missingElement("GetArrBoardWithDetailsResponse")
	}
	if e.Body.Response.GetStationBoardResult == nil {
		return missingElement("GetStationBoardResult")
	}

	return e.Body.Response.GetStationBoardResult.validate()
}

func (b *StationBoard) validate() error {
	if b.GeneratedAt == "" {
		return missingElement("lt4:generatedAt")
	}
	if b.LocationName == "" {
		return missingElement("lt4:locationName")
	}
	if b.Crs == "" {
		return missingElement("lt4:crs")
	}

	if b.TrainServices == nil {
		return nil
	}

	for index, service := range b.TrainServices.Service {
		if err := service.validate(fmt.Sprintf("lt8:trainServices/lt8:service[%d]", index)); err != nil {
			return err
		}
	}

	return nil
}

func (s *ServiceItem) validate(path string) error {
	if s.ServiceID == "" {
		return missingElement(path + "/lt4:serviceID")
	}
	if s.Operator == "" {
		return missingElement(path + "/lt4:operator")
	}
	if s.OperatorCode == "" {
		return missingElement(path + "/lt4:operatorCode")
	}
	if s.Origin == nil {
		return missingElement(path + "/lt5:origin")
	}
	if err := s.Origin.validate(path + "/lt5:origin"); err != nil {
		return err
	}
	if s.Destination == nil {
		return missingElement(path + "/lt5:destination")
	}
	if err := s.Destination.validate(path + "/lt5:destination"); err != nil {
		return err
	}

	if s.Formation != nil {
		if err := s.Formation.validate(path + "/lt5:formation"); err != nil {
			return err
		}
	}
	if s.PreviousCallingPoints != nil {
		if err := s.PreviousCallingPoints.validate(path + "/lt8:previousCallingPoints"); err != nil {
			return err
		}
	}
	if s.SubsequentCallingPoints != nil {
		if err := s.SubsequentCallingPoints.validate(path + "/lt8:subsequentCallingPoints"); err != nil {
			return err
		}
	}

	return nil
}

// Services returns the board's train services, which may be absent entirely
func (b *StationBoard) Services() []ServiceItem {
	if b.TrainServices == nil {
		return nil
	}

	return b.TrainServices.Service
}
