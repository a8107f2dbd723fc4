package operations

import (
	"net/http"
	"net/http/httptest"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

// newStubServer starts an httptest.Server that always answers with
// statusCode and an empty JSON object, so execution.Execute's 2xx/non-2xx
// branch can be driven deterministically; stub connectors below never look
// at the response body themselves, returning a fixed value instead.
func newStubServer(t testingT, statusCode int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write([]byte("{}"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testingT is the subset of *testing.T these helpers need, avoiding an
// import cycle concern between stub files and the package's own tests.
type testingT interface {
	Cleanup(func())
}

// stubAuthorize is a FlowConnector[AuthorizeRequest, AuthorizeResponse] test
// double. BuildRequest points at an httptest server whose status code
// decides which branch execution.Execute takes; the fixed nextResponse/
// nextErrResp fields decide what HandleResponse/GetErrorResponse hand back.
type stubAuthorize struct {
	serverURL    string
	buildErr     error
	nextResponse connector.AuthorizeResponse
	nextErrResp  router.ErrorResponse
}

func (s *stubAuthorize) ID() string { return "stub" }
func (s *stubAuthorize) BaseURL(cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL, nil
}
func (s *stubAuthorize) GetAuthHeader(auth router.ConnectorAuthType) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubAuthorize) GetContentType() string { return "application/json" }
func (s *stubAuthorize) GetHeaders(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubAuthorize) GetURL(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL + "/charges", nil
}
func (s *stubAuthorize) GetRequestBody(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse]) (string, error) {
	return "{}", nil
}
func (s *stubAuthorize) Method() string { return http.MethodPost }
func (s *stubAuthorize) BuildRequest(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return http.NewRequest(http.MethodPost, s.serverURL+"/charges", nil)
}
func (s *stubAuthorize) HandleResponse(data *router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], rawResponse []byte) (*router.RouterData[connector.AuthorizeRequest, connector.AuthorizeResponse], error) {
	updated := data.WithResponse(s.nextResponse)
	return &updated, nil
}
func (s *stubAuthorize) GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	return s.nextErrResp, nil
}

var _ connector.FlowConnector[connector.AuthorizeRequest, connector.AuthorizeResponse] = (*stubAuthorize)(nil)

// stubCapture mirrors stubAuthorize for the Capture flow.
type stubCapture struct {
	serverURL    string
	buildErr     error
	nextResponse connector.CaptureResponse
	nextErrResp  router.ErrorResponse
}

func (s *stubCapture) ID() string { return "stub" }
func (s *stubCapture) BaseURL(cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL, nil
}
func (s *stubCapture) GetAuthHeader(auth router.ConnectorAuthType) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubCapture) GetContentType() string { return "application/json" }
func (s *stubCapture) GetHeaders(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubCapture) GetURL(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL + "/captures", nil
}
func (s *stubCapture) GetRequestBody(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse]) (string, error) {
	return "{}", nil
}
func (s *stubCapture) Method() string { return http.MethodPost }
func (s *stubCapture) BuildRequest(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return http.NewRequest(http.MethodPost, s.serverURL+"/captures", nil)
}
func (s *stubCapture) HandleResponse(data *router.RouterData[connector.CaptureRequest, connector.CaptureResponse], rawResponse []byte) (*router.RouterData[connector.CaptureRequest, connector.CaptureResponse], error) {
	updated := data.WithResponse(s.nextResponse)
	return &updated, nil
}
func (s *stubCapture) GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	return s.nextErrResp, nil
}

var _ connector.FlowConnector[connector.CaptureRequest, connector.CaptureResponse] = (*stubCapture)(nil)

// stubVoid mirrors stubAuthorize for the Void flow.
type stubVoid struct {
	serverURL    string
	nextResponse connector.VoidResponse
	nextErrResp  router.ErrorResponse
}

func (s *stubVoid) ID() string { return "stub" }
func (s *stubVoid) BaseURL(cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL, nil
}
func (s *stubVoid) GetAuthHeader(auth router.ConnectorAuthType) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubVoid) GetContentType() string { return "application/json" }
func (s *stubVoid) GetHeaders(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], cfg *config.ConnectorsConfig) ([]connector.Header, error) {
	return nil, nil
}
func (s *stubVoid) GetURL(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], cfg *config.ConnectorsConfig) (string, error) {
	return s.serverURL + "/voids", nil
}
func (s *stubVoid) GetRequestBody(data *router.RouterData[connector.VoidRequest, connector.VoidResponse]) (string, error) {
	return "{}", nil
}
func (s *stubVoid) Method() string { return http.MethodPost }
func (s *stubVoid) BuildRequest(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], cfg *config.ConnectorsConfig) (*http.Request, error) {
	return http.NewRequest(http.MethodPost, s.serverURL+"/voids", nil)
}
func (s *stubVoid) HandleResponse(data *router.RouterData[connector.VoidRequest, connector.VoidResponse], rawResponse []byte) (*router.RouterData[connector.VoidRequest, connector.VoidResponse], error) {
	updated := data.WithResponse(s.nextResponse)
	return &updated, nil
}
func (s *stubVoid) GetErrorResponse(rawBytes []byte) (router.ErrorResponse, error) {
	return s.nextErrResp, nil
}

var _ connector.FlowConnector[connector.VoidRequest, connector.VoidResponse] = (*stubVoid)(nil)

// stubPSync mirrors stubAuthorize for the PSync flow.
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

// stubRefundSync mirrors stubAuthorize for the RefundSync flow.
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
