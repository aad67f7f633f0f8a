package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	awsctl "github.com/isometry/cakto-webhook-app/internal/controllers/aws"
	"github.com/isometry/cakto-webhook-app/internal/config"
	"github.com/isometry/cakto-webhook-app/internal/models"
	"github.com/isometry/cakto-webhook-app/internal/notifier"
	"github.com/isometry/cakto-webhook-app/internal/webhook"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	values map[string]string
}

func (f *fakeSSM) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	v, ok := f.values[aws.ToString(params.Name)]
	if !ok {
		return nil, errors.Errorf("parameter %s not found", aws.ToString(params.Name))
	}
	return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String(v)}}, nil
}

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	v, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

type fakeSES struct {
	sent []*sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.sent = append(f.sent, params)
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

// withConfig snapshots the package-level configuration and restores it once the test ends.
func withConfig(t *testing.T) {
	t.Helper()
	cakto, email, lambda := config.Cakto, config.Email, config.Lambda
	t.Cleanup(func() {
		config.Cakto, config.Email, config.Lambda = cakto, email, lambda
	})
	require.NoError(t, config.SetDefaults())
	config.Email.Provider = notifier.ProviderNoop
}

func fakeAWS(ses *fakeSES) []awsctl.Option {
	return []awsctl.Option{
		awsctl.WithSESClient(ses),
		awsctl.WithSSMClient(&fakeSSM{values: map[string]string{"/cakto/secret": "from-ssm"}}),
		awsctl.WithS3Client(&fakeS3{objects: map[string]string{
			"tpl/text": "Olá {{ .CustomerEmail }}, compra de {{ .ProductName }} confirmada.",
		}}),
	}
}

func post(t *testing.T, srv *httptest.Server, body string) (int, models.Body) {
	t.Helper()
	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var b models.Body
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	return resp.StatusCode, b
}

func TestSetup(t *testing.T) {
	type testCase struct {
		Name      string
		Configure func()
		ExpectErr string
	}

	testCases := []testCase{
		{
			Name:      "noop_provider",
			Configure: func() {},
		},
		{
			Name: "smtp_provider",
			Configure: func() {
				config.Email.Provider = notifier.ProviderSMTP
			},
		},
		{
			Name: "smtp_provider_invalid_tls_policy",
			Configure: func() {
				config.Email.Provider = notifier.ProviderSMTP
				config.Email.SMTP.TLSPolicy = "sometimes"
			},
			ExpectErr: "TLS policy",
		},
		{
			Name: "ses_provider",
			Configure: func() {
				config.Email.Provider = notifier.ProviderSES
			},
		},
		{
			Name: "unknown_provider",
			Configure: func() {
				config.Email.Provider = "pigeon"
			},
			ExpectErr: "invalid email provider: pigeon",
		},
		{
			Name: "unknown_secret_source",
			Configure: func() {
				config.Cakto.SecretSource = "vault"
			},
			ExpectErr: "invalid webhook secret source: vault",
		},
		{
			Name: "ssm_secret_missing",
			Configure: func() {
				config.Cakto.SecretSource = config.SecretSourceSSM
				config.Cakto.SSMKey = "/cakto/missing"
			},
			ExpectErr: "failed to load webhook secret",
		},
		{
			Name: "s3_template_missing",
			Configure: func() {
				config.Email.Templates.Bucket = "tpl"
				config.Email.Templates.HTMLKey = "missing"
			},
			ExpectErr: "failed to load HTML template",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			withConfig(t)
			tc.Configure()

			rtm, err := setup(context.Background(), fakeAWS(&fakeSES{})...)
			if tc.ExpectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.ExpectErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rtm)
		})
	}
}

func TestService_EndToEnd(t *testing.T) {
	withConfig(t)
	config.Cakto.SecretSource = config.SecretSourceSSM
	config.Cakto.SSMKey = "/cakto/secret"
	config.Email.Templates.Bucket = "tpl"
	config.Email.Templates.TextKey = "text"
	config.Email.Provider = notifier.ProviderSES

	ses := &fakeSES{}
	rtm, err := setup(context.Background(), fakeAWS(ses)...)
	require.NoError(t, err)

	srv := httptest.NewServer(rtm)
	defer srv.Close()

	t.Run("ready", func(t *testing.T) {
		resp, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var b models.Body
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
		assert.Equal(t, webhook.ReadyMessage, b.Message)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		status, b := post(t, srv, `{"event":"purchase_approved","secret":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, status)
		require.NotNil(t, b.OK)
		assert.False(t, *b.OK)
	})

	t.Run("skipped_event", func(t *testing.T) {
		status, b := post(t, srv, `{"event":"refund","secret":"from-ssm"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, b.Skipped)
	})

	t.Run("approved_purchase", func(t *testing.T) {
		status, b := post(t, srv, `{"event":"purchase_approved","secret":"from-ssm","data":{"customer":{"email":"ana@example.com"},"product":{"name":"Curso"}}}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, webhook.ProcessedMessage, b.Message)
		assert.Equal(t, "ana@example.com", b.Email)
		assert.Equal(t, "Curso", b.ProductName)
		require.NotNil(t, b.EmailSent)
		assert.True(t, *b.EmailSent)

		require.Len(t, ses.sent, 1)
		assert.Equal(t, []string{"ana@example.com"}, ses.sent[0].Destination.ToAddresses)
		assert.Equal(t, "Olá ana@example.com, compra de Curso confirmada.", aws.ToString(ses.sent[0].Content.Simple.Body.Text.Data))
	})
}
