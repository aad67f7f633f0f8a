package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/isometry/cakto-webhook-app/internal/models"
)

const (
	// ReadyMessage is returned to GET health checks.
	ReadyMessage = "Webhook ativo e pronto para receber POST da Cakto 🚀"
	// ProcessedMessage is returned once an approved purchase was handled.
	ProcessedMessage = "Webhook processado com sucesso"

	errMethodNotAllowed = "Method not allowed"
	errInvalidSecret    = "Segredo inválido"
	errInvalidDetail    = "Secret recebido não bate com o configurado no servidor."
	errInternal         = "Erro interno no webhook"
	errTooLarge         = "Payload muito grande"
)

// CORSHeaders are attached to every response on the webhook route.
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST, GET, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// NewResponse serialises body and attaches the CORS and content-type headers.
func NewResponse(statusCode int, body models.Body) models.Response {
	headers := make(map[string]string, len(CORSHeaders)+1)
	for k, v := range CORSHeaders {
		headers[k] = v
	}
	headers["Content-Type"] = "application/json"

	b, err := json.Marshal(body)
	if err != nil {
		// models.Body only holds strings and bools
		panic(err)
	}
	return models.Response{StatusCode: statusCode, Headers: headers, Body: b}
}

// PreflightResponse answers CORS preflight requests.
func PreflightResponse() models.Response {
	return NewResponse(http.StatusOK, models.Body{OK: helpers.Ptr(true)})
}

// ReadyResponse answers GET health checks.
func ReadyResponse() models.Response {
	return NewResponse(http.StatusOK, models.Body{OK: helpers.Ptr(true), Message: ReadyMessage})
}

// MethodNotAllowedResponse answers any method other than OPTIONS, GET and POST.
func MethodNotAllowedResponse() models.Response {
	return NewResponse(http.StatusMethodNotAllowed, models.Body{Error: errMethodNotAllowed})
}

// InvalidSecretResponse answers a POST whose secret does not match the configured one.
func InvalidSecretResponse() models.Response {
	return NewResponse(http.StatusUnauthorized, models.Body{
		OK:     helpers.Ptr(false),
		Error:  errInvalidSecret,
		Detail: errInvalidDetail,
	})
}

// SkippedResponse acknowledges a non-actionable event with 200 so the sender does not retry.
func SkippedResponse(event string) models.Response {
	return NewResponse(http.StatusOK, models.Body{
		OK:      helpers.Ptr(true),
		Skipped: true,
		Message: fmt.Sprintf("Evento ignorado: %s (não é %s)", event, PurchaseApproved),
	})
}

// ProcessedResponse reports a handled approved purchase and whether its email went out.
func ProcessedResponse(p *Payload, emailSent bool) models.Response {
	return NewResponse(http.StatusOK, models.Body{
		OK:          helpers.Ptr(true),
		Message:     ProcessedMessage,
		Email:       p.CustomerEmail,
		ProductName: p.ProductName,
		EmailSent:   helpers.Ptr(emailSent),
	})
}

// PayloadTooLargeResponse refuses a body over limit bytes. It is never a 2xx, so the sender retries.
func PayloadTooLargeResponse(limit int64) models.Response {
	return NewResponse(http.StatusRequestEntityTooLarge, models.Body{
		OK:     helpers.Ptr(false),
		Error:  errTooLarge,
		Detail: fmt.Sprintf("O corpo da requisição excede %d bytes.", limit),
	})
}

// InternalErrorResponse converts an unexpected failure into a 500.
func InternalErrorResponse(err error) models.Response {
	details := "unknown error"
	if err != nil {
		details = err.Error()
	}
	return NewResponse(http.StatusInternalServerError, models.Body{
		OK:      helpers.Ptr(false),
		Error:   errInternal,
		Details: details,
	})
}
