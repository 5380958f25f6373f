package ldbws

import (
	"bytes"
	"encoding/xml"

	"golang.org/x/net/html/charset"
)

const (
	SchemaBoard          = "board"
	SchemaServiceDetails = "service details"
)

func DecodeBoard(data []byte) (*StationBoard, error) {
	var envelope BoardEnvelope

	if err := decodeXML(data, &envelope); err != nil {
		return nil, &DecodeError{Schema: SchemaBoard, Err: err}
	}
	if err := envelope.validate(); err != nil {
		return nil, &DecodeError{Schema: SchemaBoard, Err: err}
	}

	return envelope.Body.Response.GetStationBoardResult, nil
}

func DecodeServiceDetails(data []byte) (*ServiceDetails, error) {
	var envelope ServiceDetailsEnvelope

	if err := decodeXML(data, &envelope); err != nil {
		return nil, &DecodeError{Schema: SchemaServiceDetails, Err: err}
	}
	if err := envelope.validate(); err != nil {
		return nil, &DecodeError{Schema: SchemaServiceDetails, Err: err}
	}

	return envelope.Body.Response.GetServiceDetailsResult, nil
}

func decodeXML(data []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel

	return d.Decode(v)
}
