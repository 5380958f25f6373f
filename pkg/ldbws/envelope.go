package ldbws

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	tokenTypesNamespace   = "http://thalesgroup.com/RTTI/2013-11-28/Token/types"
	ldbRequestNamespace   = "http://thalesgroup.com/RTTI/2021-11-01/ldb/"
)

const envelopeTemplate = `<soapenv:Envelope xmlns:soapenv="%s" xmlns:typ="%s" xmlns:ldb="%s">
   <soapenv:Header>
      <typ:AccessToken>
         <typ:TokenValue>%s</typ:TokenValue>
      </typ:AccessToken>
   </soapenv:Header>
   <soapenv:Body>
      %s
   </soapenv:Body>
</soapenv:Envelope>`

// BuildEnvelope wraps a request fragment in a SOAP envelope carrying the access token.
// The fragment is inserted verbatim.
func BuildEnvelope(fragment string, token string) string {
	return fmt.Sprintf(envelopeTemplate, soapEnvelopeNamespace, tokenTypesNamespace, ldbRequestNamespace, escapeText(token), fragment)
}

type tokenEnvelope struct {
	Header struct {
		AccessToken struct {
			TokenValue string `xml:"TokenValue"`
		} `xml:"AccessToken"`
	} `xml:"Header"`
}

// ExtractToken reads the access token back out of an envelope built by BuildEnvelope
func ExtractToken(envelope string) (string, error) {
	var parsed tokenEnvelope

	if err := xml.Unmarshal([]byte(envelope), &parsed); err != nil {
		return "", err
	}

	return parsed.Header.AccessToken.TokenValue, nil
}

func escapeText(s string) string {
	var builder strings.Builder
	xml.EscapeText(&builder, []byte(s))

	return builder.String()
}
