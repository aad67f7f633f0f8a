// Package runtime adapts Lambda events and plain HTTP requests to the webhook handler.
package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/cakto-webhook-app/internal/handler"
	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/isometry/cakto-webhook-app/internal/models"
	"github.com/isometry/cakto-webhook-app/internal/webhook"
	"github.com/pkg/errors"
)

// Lambda payload types.
const (
	PayloadAPIGatewayV1 = "api-gateway-v1"
	PayloadAPIGatewayV2 = "api-gateway-v2"
	PayloadLambdaURL    = "lambda-url"
)

// maxBodyBytes bounds the body read in service mode. Larger bodies are refused with 413.
const maxBodyBytes = 1 << 20

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

type Runtime struct {
	*handler.Handler
	logger *slog.Logger
}

// NewRuntime creates a new runtime instance
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Lambda is the Lambda handler for the runtime. The raw event is decoded according to the
// configured payload type.
func (r *Runtime) Lambda(ctx context.Context, raw json.RawMessage) (any, error) {
	payloadType := r.Handler.GetLambdaPayloadType()
	r.logger.Info("received lambda event", slog.String("payloadType", payloadType))

	switch payloadType {
	case PayloadAPIGatewayV1:
		var event events.APIGatewayProxyRequest
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v1 event")
		}
		resp := r.handle(ctx, event.HTTPMethod, event.Path, event.Body, event.IsBase64Encoded, event.Headers)
		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       string(resp.Body),
		}, nil
	case PayloadAPIGatewayV2:
		var event events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v2 event")
		}
		resp := r.handle(ctx, event.RequestContext.HTTP.Method, event.RawPath, event.Body, event.IsBase64Encoded, event.Headers)
		return events.APIGatewayV2HTTPResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       string(resp.Body),
		}, nil
	case PayloadLambdaURL:
		var event events.LambdaFunctionURLRequest
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, errors.Wrap(err, "failed to decode Lambda function URL event")
		}
		resp := r.handle(ctx, event.RequestContext.HTTP.Method, event.RawPath, event.Body, event.IsBase64Encoded, event.Headers)
		return events.LambdaFunctionURLResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       string(resp.Body),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", payloadType)
	}
}

func (r *Runtime) handle(ctx context.Context, method, path, body string, isBase64 bool, headers map[string]string) models.Response {
	raw := []byte(body)
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			r.logger.Error("failed to decode base64 body", slog.Any("error", err))
			return webhook.InternalErrorResponse(errors.Wrap(err, "failed to decode request body"))
		}
		raw = decoded
	}
	return r.Handler.Process(ctx, models.Request{
		Method:  method,
		Path:    path,
		Body:    raw,
		Headers: normaliseHeaders(headers),
	})
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))

	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}

	body, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		r.logger.Warn("rejecting request", "reason", "body too large", slog.Int64("limit", tooLarge.Limit))
		helpers.RespondHTTP(webhook.PayloadTooLargeResponse(tooLarge.Limit), resp)
		return
	}
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(webhook.InternalErrorResponse(errors.Wrap(err, "failed to read request body")), resp)
		return
	}

	result := r.Handler.Process(req.Context(), models.Request{
		Method:  req.Method,
		Path:    req.URL.Path,
		Body:    body,
		Headers: headers,
	})
	r.logger.Debug("responding...", slog.Int("statusCode", result.StatusCode))
	helpers.RespondHTTP(result, resp)
}

func normaliseHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}
