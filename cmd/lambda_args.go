package cmd

import (
	"fmt"

	"github.com/isometry/cakto-webhook-app/internal/config"
	"github.com/isometry/cakto-webhook-app/internal/runtime"
)

var lambdaEnvMapString = map[*string]boundEnvVar[string]{
	&config.Lambda.PayloadType: {
		Name: "lambda-payload-type",
		Description: fmt.Sprintf("The event shape the function is invoked with: '%s' (REST API), '%s' (HTTP API) or '%s' (function URL)",
			runtime.PayloadAPIGatewayV1, runtime.PayloadAPIGatewayV2, runtime.PayloadLambdaURL),
	},
}
