package ldbws

import "encoding/xml"

// ServiceDetailsEnvelope is the GetServiceDetails response. Unlike the board, the service
// level fields live in the lt7 namespace and origin and destination are usually omitted.
type ServiceDetailsEnvelope struct {
	XMLName xml.Name           `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    ServiceDetailsBody `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type ServiceDetailsBody struct {
	Response *GetServiceDetailsResponse `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/ GetServiceDetailsResponse"`
	Fault    *SOAPFault                 `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`
}

type GetServiceDetailsResponse struct {
	GetServiceDetailsResult *ServiceDetails `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/ GetServiceDetailsResult"`
}

type ServiceDetails struct {
	GeneratedAt  string  `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types generatedAt"`
	ServiceID    *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types serviceID"`
	Rsid         *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types rsid"`
	ServiceType  string  `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types serviceType"`
	LocationName string  `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types locationName"`
	Crs          string  `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types crs"`
	Operator     string  `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types operator"`
	OperatorCode string  `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types operatorCode"`

	IsCancelled        bool    `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types isCancelled"`
	CancelReason       *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types cancelReason"`
	DelayReason        *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types delayReason"`
	Length             *int    `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types length"`
	DetachFront        bool    `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types detachFront"`
	IsReverseFormation bool    `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types isReverseFormation"`
	Platform           *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types platform"`

	Sta *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types sta"`
	Eta *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types eta"`
	Ata *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types ata"`
	Std *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types std"`
	Etd *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types etd"`
	Atd *string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types atd"`

	AdhocAlerts *AdhocAlerts `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types adhocAlerts"`

	Origin      *ServiceLocations `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types origin"`
	Destination *ServiceLocations `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types destination"`
	Formation   *FormationData    `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types formation"`

	PreviousCallingPoints   *CallingPointLists `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types previousCallingPoints"`
	SubsequentCallingPoints *CallingPointLists `xml:"http://thalesgroup.com/RTTI/2021-11-01/ldb/types subsequentCallingPoints"`
}

type AdhocAlerts struct {
	AdhocAlertText []string `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/types adhocAlertText"`
}

func (e *ServiceDetailsEnvelope) validate() error {
	if e.Body.Fault != nil {
		return e.Body.Fault
	}
	if e.Body.Response == nil {
		return missingElement("GetServiceDetailsResponse")
	}
	if e.Body.Response.GetServiceDetailsResult == nil {
		return missingElement("GetServiceDetailsResult")
	}

	return e.Body.Response.GetServiceDetailsResult.validate()
}

func (d *ServiceDetails) validate() error {
	if d.GeneratedAt == "" {
		return missingElement("lt7:generatedAt")
	}
	if d.LocationName == "" {
		return missingElement("lt7:locationName")
	}
	if d.Crs == "" {
		return missingElement("lt7:crs")
	}
	if d.Operator == "" {
		return missingElement("lt7:operator")
	}
	if d.OperatorCode == "" {
		return missingElement("lt7:operatorCode")
	}

	// Origin and destination are optional, but when they are sent they must be complete
	if d.Origin != nil {
		if err := d.Origin.validate("lt7:origin"); err != nil {
			return err
		}
	}
	if d.Destination != nil {
		if err := d.Destination.validate("lt7:destination"); err != nil {
			return err
		}
	}
	if d.Formation != nil {
		if err := d.Formation.validate("lt7:formation"); err != nil {
			return err
		}
	}
	if d.PreviousCallingPoints != nil {
		if err := d.PreviousCallingPoints.validate("lt8:previousCallingPoints"); err != nil {
			return err
		}
	}
	if d.SubsequentCallingPoints != nil {
		if err := d.SubsequentCallingPoints.validate("lt8:subsequentCallingPoints"); err != nil {
			return err
		}
	}

	return nil
}
