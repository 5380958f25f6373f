package ldbws

import (
	"fmt"
	"strings"
)

const (
	ActionGetArrBoardWithDetails = "http://thalesgroup.com/RTTI/2015-05-14/ldb/GetArrBoardWithDetails"
	ActionGetServiceDetails      = "http://thalesgroup.com/RTTI/2012-01-13/ldb/GetServiceDetails"
)

const (
	DefaultNumRows    = 10
	DefaultTimeOffset = 0
	DefaultTimeWindow = 120
)

type ArrBoardWithDetailsRequest struct {
	CRS        string
	NumRows    int
	TimeOffset int
	TimeWindow int

	// Optional destination filter, FilterType is "to" or "from"
	FilterCRS  string
	FilterType string
}

func (r ArrBoardWithDetailsRequest) Fragment() string {
	var builder strings.Builder

	builder.WriteString("<ldb:GetArrBoardWithDetailsRequest>")
	writeElement(&builder, "numRows", fmt.Sprint(r.NumRows))
	writeElement(&builder, "crs", r.CRS)
	if r.FilterCRS != "" {
		writeElement(&builder, "filterCrs", r.FilterCRS)

		if r.FilterType != "" {
			writeElement(&builder, "filterType", r.FilterType)
		}
	}
	writeElement(&builder, "timeOffset", fmt.Sprint(r.TimeOffset))
	writeElement(&builder, "timeWindow", fmt.Sprint(r.TimeWindow))
	builder.WriteString("</ldb:GetArrBoardWithDetailsRequest>")

	return builder.String()
}

type ServiceDetailsRequest struct {
	ServiceID string
}

func (r ServiceDetailsRequest) Fragment() string {
	var builder strings.Builder

	builder.WriteString("<ldb:GetServiceDetailsRequest>")
	writeElement(&builder, "serviceID", r.ServiceID)
	builder.WriteString("</ldb:GetServiceDetailsRequest>")

	return builder.String()
}

func writeElement(builder *strings.Builder, name string, value string) {
	fmt.Fprintf(builder, "<ldb:%s>%s</ldb:%s>", name, escapeText(value), name)
}
