package helpers

import (
	"net/http"

	"github.com/isometry/cakto-webhook-app/internal/models"
)

// RespondHTTP writes the response headers, status code and body to the given http.ResponseWriter.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write(response.Body)
}
