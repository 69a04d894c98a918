package templates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

func TestRender(t *testing.T) {
	registry := NewRegistry(logger.SetupLogger("local"))

	tCases := []struct {
		name     string
		template string
		data     map[string]string
		contains []string
	}{
		{
			name:     "order_confirmation_sms",
			template: OrderConfirmationSMS,
			data: map[string]string{
				"CustomerName": "علی رضایی",
				"OrderNumber":  "ORD-A1B2C3D4",
				"TotalPrice":   "150,000",
			},
			contains: []string{"علی رضایی", "ORD-A1B2C3D4", "150,000"},
		},
		{
			name:     "payment_failure_email",
			template: PaymentFailureEmail,
			data: map[string]string{
				"PaymentNumber": "PAY-DEADBEEF",
				"OrderNumber":   "ORD-A1B2C3D4",
				"FailureReason": "خطای بانکی",
			},
			contains: []string{"PAY-DEADBEEF", "خطای بانکی"},
		},
		{
			name:     "welcome_email",
			template: WelcomeEmail,
			data: map[string]string{
				"CustomerName": "علی رضایی",
				"Username":     "ali_r",
			},
			contains: []string{"علی رضایی", "ali_r"},
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			rendered := registry.Render(tCase.template, tCase.data)

			for _, want := range tCase.contains {
				require.Contains(t, rendered, want)
			}
			require.NotContains(t, rendered, "{CustomerName}")
		})
	}
}

func TestRenderReplacesEveryOccurrence(t *testing.T) {
	registry := NewRegistry(logger.SetupLogger("local"))

	rendered := registry.Render(PaymentSuccessEmail, map[string]string{
		"PaymentNumber": "PAY-DEADBEEF",
		"OrderNumber":   "ORD-A1B2C3D4",
		"TotalPrice":    "250,000",
		"PaymentMethod": "کارت به کارت",
	})

	require.NotContains(t, rendered, "{PaymentNumber}")
	require.NotContains(t, rendered, "{OrderNumber}")
	require.NotContains(t, rendered, "{TotalPrice}")
	require.NotContains(t, rendered, "{PaymentMethod}")
}

func TestRenderAbsentTokenStaysLiteral(t *testing.T) {
	registry := NewRegistry(logger.SetupLogger("local"))

	rendered := registry.Render(PaymentFailureSMS, map[string]string{
		"PaymentNumber": "PAY-DEADBEEF",
	})

	require.Contains(t, rendered, "PAY-DEADBEEF")
	require.Contains(t, rendered, "{FailureReason}")
}

func TestRenderUnknownTemplate(t *testing.T) {
	registry := NewRegistry(logger.SetupLogger("local"))

	require.Empty(t, registry.Render("no_such_template", map[string]string{"A": "b"}))
}
