package runtime_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/cakto-webhook-app/internal/handler"
	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/isometry/cakto-webhook-app/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const approvedPayload = `{"event":"purchase_approved","secret":"abc123","data":{"customer":{"email":"a@b.com"},"product":{"name":"Curso X"}}}`

func newRuntime(t *testing.T, payloadType string) *runtime.Runtime {
	t.Helper()
	hdl, err := handler.NewWebhookHandler(
		handler.WithWebhookSecret("abc123"),
		handler.WithNotifier(notifier.NewNoop(nil)),
		handler.WithLambdaPayloadType(payloadType))
	require.NoError(t, err)
	return runtime.NewRuntime(hdl)
}

func TestRuntime_ServeHTTP(t *testing.T) {
	testCases := []struct {
		Name           string
		Method         string
		Body           string
		ExpectedStatus int
		ExpectedBody   string
	}{
		{
			Name:           "options",
			Method:         http.MethodOptions,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"ok":true}`,
		},
		{
			Name:           "put",
			Method:         http.MethodPut,
			ExpectedStatus: http.StatusMethodNotAllowed,
			ExpectedBody:   `{"error":"Method not allowed"}`,
		},
		{
			Name:           "approved",
			Method:         http.MethodPost,
			Body:           approvedPayload,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `{"ok":true,"message":"Webhook processado com sucesso","email":"a@b.com","productName":"Curso X","emailSent":true}`,
		},
		{
			Name:           "bad_secret",
			Method:         http.MethodPost,
			Body:           `{"event":"purchase_approved","secret":"nope"}`,
			ExpectedStatus: http.StatusUnauthorized,
			ExpectedBody:   `{"ok":false,"error":"Segredo inválido","detail":"Secret recebido não bate com o configurado no servidor."}`,
		},
		{
			Name:           "oversized_body",
			Method:         http.MethodPost,
			Body:           `{"event":"purchase_approved","secret":"abc123","pad":"` + strings.Repeat("x", 1<<20) + `"}`,
			ExpectedStatus: http.StatusRequestEntityTooLarge,
			ExpectedBody:   `{"ok":false,"error":"Payload muito grande","detail":"O corpo da requisição excede 1048576 bytes."}`,
		},
	}

	rtm := newRuntime(t, runtime.PayloadAPIGatewayV2)
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(tc.Method, "/api/cakto-webhook", strings.NewReader(tc.Body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			rtm.ServeHTTP(rr, req)

			assert.Equal(t, tc.ExpectedStatus, rr.Code)
			assert.JSONEq(t, tc.ExpectedBody, rr.Body.String())
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "POST, GET, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestRuntime_Lambda(t *testing.T) {
	v2 := events.APIGatewayV2HTTPRequest{Body: approvedPayload}
	v2.RequestContext.HTTP.Method = http.MethodPost

	v1 := events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            base64.StdEncoding.EncodeToString([]byte(approvedPayload)),
		IsBase64Encoded: true,
	}

	url := events.LambdaFunctionURLRequest{Body: `{"event":"purchase_refunded","secret":"abc123"}`}
	url.RequestContext.HTTP.Method = http.MethodPost

	testCases := []struct {
		Name           string
		PayloadType    string
		Event          any
		ExpectedStatus int
		ExpectedBody   string
		ExpectError    bool
	}{
		{
			Name:           "api_gateway_v2",
			PayloadType:    runtime.PayloadAPIGatewayV2,
			Event:          v2,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `"emailSent":true`,
		},
		{
			Name:           "api_gateway_v1_base64",
			PayloadType:    runtime.PayloadAPIGatewayV1,
			Event:          v1,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `"productName":"Curso X"`,
		},
		{
			Name:           "lambda_url_skipped",
			PayloadType:    runtime.PayloadLambdaURL,
			Event:          url,
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   `"skipped":true`,
		},
		{
			Name:        "unsupported",
			PayloadType: "sqs",
			Event:       v2,
			ExpectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			raw, err := json.Marshal(tc.Event)
			require.NoError(t, err)

			out, err := newRuntime(t, tc.PayloadType).Lambda(context.Background(), raw)
			if tc.ExpectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var status int
			var body string
			var headers map[string]string
			switch resp := out.(type) {
			case events.APIGatewayProxyResponse:
				status, body, headers = resp.StatusCode, resp.Body, resp.Headers
			case events.APIGatewayV2HTTPResponse:
				status, body, headers = resp.StatusCode, resp.Body, resp.Headers
			case events.LambdaFunctionURLResponse:
				status, body, headers = resp.StatusCode, resp.Body, resp.Headers
			default:
				t.Fatalf("unexpected response type %T", out)
			}
			assert.Equal(t, tc.ExpectedStatus, status)
			assert.Contains(t, body, tc.ExpectedBody)
			assert.Equal(t, "*", headers["Access-Control-Allow-Origin"])
		})
	}
}
