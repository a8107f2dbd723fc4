// Package execution implements the execution engine named in spec §4.3:
// given a built *http.Request and the adapter that built it, issue the
// call, and route the raw response through the adapter's own
// handle_response/get_error_response rather than a generic JSON decoder.
package execution

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
	routererrors "github.com/paylinkhq/router-core/pkg/errors"
	"github.com/paylinkhq/router-core/pkg/metrics"
)

// DefaultTimeout is the outbound call deadline applied when
// HTTPClientConfig.Timeout is unset, per spec §5.
const DefaultTimeout = 30 * time.Second

// Engine carries the resty client the core's outbound acquirer calls
// share. resty owns the deadline and connection pooling; adapters still
// hand-build every *http.Request themselves (internal/connector/stripe),
// so the engine's only job is to execute that request and route the raw
// bytes back through the adapter's own response handling.
type Engine struct {
	client *resty.Client
}

// NewEngine constructs an Engine from the outbound HTTP client
// configuration, defaulting to DefaultTimeout when unset.
func NewEngine(cfg *config.HTTPClientConfig) *Engine {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().SetTimeout(timeout)
	return &Engine{client: client}
}

// Execute runs the execution engine's four steps (spec §4.3) for one
// Trigger call: issue httpReq, and on 2xx feed the body to
// fc.HandleResponse, on non-2xx feed it to fc.GetErrorResponse and return
// a ConnectorError carrying the parsed ErrorResponse, and on transport
// failure return a ConnectorError wrapping the cause (request timeout
// gets its own kind so the pipeline boundary can map it to a 504
// specifically, per pkg/errors.FromConnectorError).
//
// Execute never returns a non-nil `error` itself — transport and
// acquirer-side failures are both carried back on the returned envelope's
// ResponseErr, matching handle_response's "returns a new envelope" shape
// for the success path.
func Execute[Req any, Resp any](
	ctx context.Context,
	e *Engine,
	fc connector.FlowConnector[Req, Resp],
	httpReq *http.Request,
	data router.RouterData[Req, Resp],
) router.RouterData[Req, Resp] {
	httpReq = httpReq.WithContext(ctx)
	start := time.Now()
	flow := string(data.Flow)

	record := func(result router.RouterData[Req, Resp]) router.RouterData[Req, Resp] {
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		metrics.RecordConnectorCall(flow, data.ConnectorName, durationMs, result.ResponseErr == nil)
		return result
	}

	httpResp, err := e.client.GetClient().Do(httpReq)
	if err != nil {
		return record(data.WithError(transportError(err)))
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return record(data.WithError(routererrors.NewConnectorError(routererrors.TransportFailed, "failed to read connector response body", err)))
	}

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		updated, err := fc.HandleResponse(&data, rawBody)
		if err != nil {
			var connErr *routererrors.ConnectorError
			if errors.As(err, &connErr) {
				return record(data.WithError(connErr))
			}
			return record(data.WithError(routererrors.NewConnectorError(routererrors.ResponseHandlingFailed, "adapter failed to handle connector response", err)))
		}
		return record(*updated)
	}

	errResp, err := fc.GetErrorResponse(rawBody)
	if err != nil {
		var connErr *routererrors.ConnectorError
		if errors.As(err, &connErr) {
			return record(data.WithError(connErr))
		}
		return record(data.WithError(routererrors.NewConnectorError(routererrors.ResponseDeserializationFailed, "adapter failed to parse connector error response", err)))
	}

	return record(data.WithError(connectorErrorFromResponse(errResp)))
}

// connectorErrorFromResponse carries the acquirer's parsed code and message
// as a ConnectorError; the pipeline boundary (internal/operations)
// translates this into the flow-specific ApiErrorResponse variant
// (PaymentAuthorizationFailed, PaymentCaptureFailed, RefundFailed, ...)
// since only the operation knows which flow is running.
func connectorErrorFromResponse(errResp router.ErrorResponse) *routererrors.ConnectorError {
	return routererrors.NewAcquirerError(errResp.Code, errResp.Message)
}

func transportError(err error) *routererrors.ConnectorError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return routererrors.NewConnectorError(routererrors.RequestTimeoutReceived, "connector request timed out", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return routererrors.NewConnectorError(routererrors.RequestTimeoutReceived, "connector request timed out", err)
	}
	return routererrors.NewConnectorError(routererrors.TransportFailed, "failed to reach connector", err)
}
