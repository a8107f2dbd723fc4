package webhook

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

// newStubServer starts an httptest.Server that always answers with
// statusCode and an empty JSON object, mirroring internal/operations'
// test double of the same name.
func newStubServer(t *testing.T, statusCode int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// stubPSync is a FlowConnector[PSyncRequest, PSyncResponse] test double
// exercising the acquirer call a synthesized PSync makes.
type stubPSync struct {
	serverURL    string
	nextResponse connector.PSyncResponse
	nextErrResp  router.ErrorResponse
}

func (s *stubPSync) ID() string { return "stub" }
func (s *stubPSync) BaseURL(cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL, nil
}
func (s *stubPSync) GetAuthHeader(auth router.ConnectorAuthType) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubPSync) GetContentType() string { return "application/json" }
func (s *stubPSync) GetHeaders(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubPSync) GetURL(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL + "/charges/sync", nil
}
func (s *stubPSync) GetRequestBody(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse]) (string, error) {
	return "{}", nil
}
func (s *stubPSync) Method() string { return http.MethodGet }
func (s *stubPSync) BuildRequest(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	return http.NewRequest(http.MethodGet, s.serverURL+"/charges/sync", nil)
}
func (s *stubPSync) HandleResponse(data *router.RouterData[connector.PSyncRequest, connector.PSyncResponse], rawResponse []byte) (*router.RouterData[connector.PSyncRequest, connector.PSyncResponse], error) {
	updated := data.WithResponse(s.nextResponse)
	return &updated, nil
}
func (s *stubPSync) GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	return s.nextErrResp, nil
}

var _ connector.FlowConnector[connector.PSyncRequest, connector.PSyncResponse] = (*stubPSync)(nil)

// stubRefundSync mirrors stubPSync for the RefundSync flow.
type stubRefundSync struct {
	serverURL    string
	nextResponse connector.RefundSyncResponse
	nextErrResp  router.ErrorResponse
}

func (s *stubRefundSync) ID() string { return "stub" }
func (s *stubRefundSync) BaseURL(cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL, nil
}
func (s *stubRefundSync) GetAuthHeader(auth router.ConnectorAuthType) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubRefundSync) GetContentType() string { return "application/json" }
func (s *stubRefundSync) GetHeaders(data *router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubRefundSync) GetURL(data *router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse], cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL + "/refunds/sync", nil
}
func (s *stubRefundSync) GetRequestBody(data *router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse]) (string, error) {
	return "{}", nil
}
func (s *stubRefundSync) Method() string { return http.MethodGet }
func (s *stubRefundSync) BuildRequest(data *router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	return http.NewRequest(http.MethodGet, s.serverURL+"/refunds/sync", nil)
}
func (s *stubRefundSync) HandleResponse(data *router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse], rawResponse []byte) (*router.RouterData[connector.RefundSyncRequest, connector.RefundSyncResponse], error) {
	updated := data.WithResponse(s.nextResponse)
	return &updated, nil
}
func (s *stubRefundSync) GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	return s.nextErrResp, nil
}

var _ connector.FlowConnector[connector.RefundSyncRequest, connector.RefundSyncResponse] = (*stubRefundSync)(nil)
