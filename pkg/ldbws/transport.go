package ldbws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultEndpoint       = "https://lite.realtime.nationalrail.co.uk/OpenLDBWS/ldb12.asmx"
	DefaultRequestTimeout = 20 * time.Second

	defaultUserAgent = "railnav/1.0"

	faultStartMarker = "<faultstring>"
	faultEndMarker   = "</faultstring>"

	unknownServerError = "Unknown server error"
)

// Transport sends a SOAP envelope and hands back the raw HTTP status and body.
// Implementations only return an error for connectivity failures.
type Transport interface {
	Send(ctx context.Context, envelope string, soapAction string) (int, []byte, error)
}

type HTTPTransport struct {
	Endpoint  string
	Timeout   time.Duration
	UserAgent string

	Client *http.Client
}

func NewHTTPTransport(endpoint string, timeout time.Duration) *HTTPTransport {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &HTTPTransport{
		Endpoint:  endpoint,
		Timeout:   timeout,
		UserAgent: defaultUserAgent,
		Client:    &http.Client{},
	}
}

func (t *HTTPTransport) Send(ctx context.Context, envelope string, soapAction string) (int, []byte, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, strings.NewReader(envelope))
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "text/xml;charset=UTF-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("\"%s\"", soapAction))
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Err: err}
	}

	return resp.StatusCode, body, nil
}

// CheckResponse turns a non-200 exchange into a ServerError, preferring the SOAP fault string
// as the message when one can be found
func CheckResponse(statusCode int, body []byte) error {
	if statusCode == http.StatusOK {
		return nil
	}

	message := unknownServerError
	if faultString, ok := extractFaultString(body); ok {
		message = faultString
	}

	return &ServerError{StatusCode: statusCode, Message: message}
}

func extractFaultString(body []byte) (string, bool) {
	start := bytes.Index(body, []byte(faultStartMarker))
	if start < 0 {
		return "", false
	}
	start += len(faultStartMarker)

	end := bytes.Index(body[start:], []byte(faultEndMarker))
	if end < 0 {
		return "", false
	}

	return string(body[start : start+end]), true
}
