package eway

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	aports "github.com/kevin07696/eway-gateway/internal/adapters/ports"
	"github.com/kevin07696/eway-gateway/internal/config"
	"github.com/kevin07696/eway-gateway/internal/domain/models"
	"github.com/kevin07696/eway-gateway/pkg/httpclient"
)

// requestFamily selects the wire dialect of a gateway call.
type requestFamily string

const (
	familyFlat requestFamily = "flat"
	familySOAP requestFamily = "soap"
)

// SettingsSource yields the gateway settings for a call. Settings are
// resolved per call so that a mode change takes effect without a restart.
type SettingsSource interface {
	Settings(ctx context.Context) (config.GatewaySettings, error)
}

// transport posts envelopes to the gateway. One round trip per call, no
// retries: a second attempt on an ambiguous failure could double-charge.
type transport struct {
	client aports.HTTPClient
	logger *zap.Logger
}

func newTransport(client aports.HTTPClient, logger *zap.Logger) *transport {
	return &transport{client: client, logger: logger}
}

// NewHTTPClient builds the client the adapters are normally run with.
// AllowInsecureTLS is for intercepting proxies in test rigs only and is
// never set implicitly.
func NewHTTPClient(timeout time.Duration, allowInsecureTLS bool) *http.Client {
	client := httpclient.New(httpclient.GatewayConfig(), timeout)
	if allowInsecureTLS {
		t := client.Transport.(*http.Transport).Clone()
		if t.TLSClientConfig == nil {
			t.TLSClientConfig = &tls.Config{}
		}
		t.TLSClientConfig.InsecureSkipVerify = true
		client.Transport = t
	}
	return client
}

// post sends body to url and returns the raw response body. A non-nil
// Result means the call failed before a response body could be had; the
// caller returns it as-is.
//
// The flat family requires HTTP 200 or 201. The SOAP services report
// faults with HTTP 500 and a parsable fault body, so for SOAP only a
// network-level failure is fatal here.
func (t *transport) post(ctx context.Context, family requestFamily, url string, env Envelope, settings config.GatewaySettings) ([]byte, *models.Result) {
	var body string
	switch family {
	case familySOAP:
		body = env.SOAP(soapHeader{
			CustomerID: settings.Credentials.CustomerID,
			Username:   settings.Credentials.MerchantID,
			Password:   settings.Credentials.MerchantPassword,
		})
	default:
		body = env.FlatXML()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(body)))
	if err != nil {
		return nil, gatewayErrorResult(map[string]string{models.PayloadNetworkError: err.Error()})
	}
	if family == familySOAP {
		req.Header.Set("Content-Type", "text/xml; charset=utf-8")
		req.Header.Set("Content-Length", strconv.Itoa(len(body)))
		req.Header.Set("SOAPAction", env.SOAPAction())
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	elapsed := time.Since(start)
	requestDuration.WithLabelValues(string(family)).Observe(elapsed.Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(string(family), "network_error").Inc()
		t.logger.Error("gateway request failed",
			zap.String("url", url),
			zap.String("operation", env.Operation),
			zap.Error(err))
		return nil, gatewayErrorResult(map[string]string{models.PayloadNetworkError: err.Error()})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(string(family), "network_error").Inc()
		t.logger.Error("gateway response read failed",
			zap.String("url", url),
			zap.String("operation", env.Operation),
			zap.Error(err))
		return nil, gatewayErrorResult(map[string]string{models.PayloadNetworkError: err.Error()})
	}

	if family == familyFlat && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		requestsTotal.WithLabelValues(string(family), "http_error").Inc()
		t.logger.Warn("gateway returned unexpected status",
			zap.String("url", url),
			zap.String("operation", env.Operation),
			zap.Int("status", resp.StatusCode))
		return nil, gatewayErrorResult(map[string]string{
			models.PayloadHTTPStatus: fmt.Sprintf("%d", resp.StatusCode),
		})
	}

	requestsTotal.WithLabelValues(string(family), "ok").Inc()
	t.logger.Debug("gateway request completed",
		zap.String("url", url),
		zap.String("operation", env.Operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))
	return raw, nil
}
