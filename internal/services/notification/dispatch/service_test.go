package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/internal/lib/templates"
	"github.com/tavakkoli/shop_events_system/internal/senders/email"
	"github.com/tavakkoli/shop_events_system/internal/senders/sms"
	"github.com/tavakkoli/shop_events_system/internal/services/notification/dispatch/mocks"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

func newService(t *testing.T, deduper Deduper) (*Service, *mocks.MockEmailSender, *mocks.MockSMSSender) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	log := logger.SetupLogger("local")
	emailSender := mocks.NewMockEmailSender(ctrl)
	smsSender := mocks.NewMockSMSSender(ctrl)

	return New(log, templates.NewRegistry(log), emailSender, smsSender, deduper), emailSender, smsSender
}

func checkoutEvent() *models.OrderCheckoutEvent {
	return &models.OrderCheckoutEvent{
		SchemaVersion: models.SchemaVersion,
		EventUUID:     uuid.New(),
		OrderUUID:     uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		FirstName:     "علی",
		LastName:      "رضایی",
		EmailAddress:  "ali@example.com",
		PhoneNumber:   "+989121234567",
		PaymentMethod: models.MethodOnlineGateway,
		TotalPrice:    150000,
	}
}

func TestOrderCheckout_SendsEmailAndSMS(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := checkoutEvent()

	var sentEmail email.Message
	var sentSMS sms.Message

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) models.NotificationResult {
			sentEmail = msg
			return models.SendSucceeded("ok")
		})
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg sms.Message) models.NotificationResult {
			sentSMS = msg
			return models.SendSucceeded("ok")
		})

	outcome := svc.OrderCheckout(context.Background(), event)

	require.NotNil(t, outcome.Email)
	require.NotNil(t, outcome.SMS)
	require.True(t, outcome.Email.IsSuccess)
	require.True(t, outcome.SMS.IsSuccess)
	require.False(t, outcome.Failed())

	require.Equal(t, "ali@example.com", sentEmail.To)
	require.Contains(t, sentEmail.Subject, "ORD-A1B2C3D4")
	require.Contains(t, sentEmail.HTMLBody, "ORD-A1B2C3D4")
	require.Contains(t, sentEmail.HTMLBody, "150,000")
	require.Contains(t, sentEmail.HTMLBody, "علی رضایی")
	require.Contains(t, sentEmail.HTMLBody, "پرداخت آنلاین")

	require.Equal(t, "+989121234567", sentSMS.To)
	require.Contains(t, sentSMS.Text, "ORD-A1B2C3D4")
	require.Contains(t, sentSMS.Text, "150,000")
}

func TestOrderCheckout_EmptyPhoneStillAttemptsSMS(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := checkoutEvent()
	event.PhoneNumber = ""

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg sms.Message) models.NotificationResult {
			require.Empty(t, msg.To)
			return models.SendFailed("sms to  failed", "empty recipient")
		})

	outcome := svc.OrderCheckout(context.Background(), event)

	require.NotNil(t, outcome.SMS)
	require.False(t, outcome.SMS.IsSuccess)
	require.NotNil(t, outcome.Email)
	require.True(t, outcome.Email.IsSuccess)
	require.True(t, outcome.Failed())
}

func TestOrderCheckout_EmailFailureDoesNotBlockSMS(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendFailed("email failed", "smtp down"))
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	outcome := svc.OrderCheckout(context.Background(), checkoutEvent())

	require.NotNil(t, outcome.Email)
	require.False(t, outcome.Email.IsSuccess)
	require.NotNil(t, outcome.SMS)
	require.True(t, outcome.SMS.IsSuccess)
	require.True(t, outcome.Failed())
}

func TestOrderCheckout_PanicInEmailDoesNotStopSMS(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, email.Message) models.NotificationResult {
			panic("smtp client exploded")
		})
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	outcome := svc.OrderCheckout(context.Background(), checkoutEvent())

	require.NotNil(t, outcome.Email)
	require.False(t, outcome.Email.IsSuccess)
	require.Contains(t, outcome.Email.ErrorMessage, "smtp client exploded")

	require.NotNil(t, outcome.SMS)
	require.True(t, outcome.SMS.IsSuccess)
}

func TestPaymentProcessed_FailureUsesFailureTemplates(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := &models.PaymentProcessedEvent{
		SchemaVersion:        models.SchemaVersion,
		EventUUID:            uuid.New(),
		PaymentUUID:          uuid.MustParse("deadbeef-0000-0000-0000-000000000000"),
		OrderUUID:            uuid.New(),
		Amount:               250000,
		PaymentMethod:        models.MethodOnlineGateway,
		Status:               models.PaymentStatusFailed,
		FailureReason:        "issuer declined the transaction",
		FailureReasonPersian: "خطای بانکی",
		EmailAddress:         "ali@example.com",
		PhoneNumber:          "+989121234567",
	}

	var sentEmail email.Message
	var sentSMS sms.Message

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) models.NotificationResult {
			sentEmail = msg
			return models.SendSucceeded("ok")
		})
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg sms.Message) models.NotificationResult {
			sentSMS = msg
			return models.SendSucceeded("ok")
		})

	outcome := svc.PaymentProcessed(context.Background(), event)
	require.False(t, outcome.Failed())

	require.Contains(t, sentEmail.Subject, "پرداخت ناموفق")
	require.Contains(t, sentEmail.Subject, "PAY-DEADBEEF")
	require.Contains(t, sentEmail.HTMLBody, "خطای بانکی")
	require.Contains(t, sentSMS.Text, "خطای بانکی")
	require.Contains(t, sentSMS.Text, "PAY-DEADBEEF")
}

func TestPaymentProcessed_SuccessUsesSuccessTemplates(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := &models.PaymentProcessedEvent{
		SchemaVersion: models.SchemaVersion,
		EventUUID:     uuid.New(),
		PaymentUUID:   uuid.MustParse("deadbeef-0000-0000-0000-000000000000"),
		OrderUUID:     uuid.New(),
		Amount:        250000,
		PaymentMethod: models.MethodCardTransfer,
		Status:        models.PaymentStatusCompleted,
		EmailAddress:  "ali@example.com",
		PhoneNumber:   "+989121234567",
	}

	var sentEmail email.Message

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) models.NotificationResult {
			sentEmail = msg
			return models.SendSucceeded("ok")
		})
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	outcome := svc.PaymentProcessed(context.Background(), event)
	require.False(t, outcome.Failed())

	require.Contains(t, sentEmail.Subject, "پرداخت موفق")
	require.Contains(t, sentEmail.HTMLBody, "250,000")
	require.NotContains(t, sentEmail.HTMLBody, "{FailureReason}")
}

func TestUserRegistered_EmptyPhoneSkipsSMS(t *testing.T) {
	svc, emailSender, _ := newService(t, nil)

	event := &models.UserRegisteredEvent{
		SchemaVersion: models.SchemaVersion,
		EventUUID:     uuid.New(),
		Username:      "ali_r",
		EmailAddress:  "ali@example.com",
	}

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	outcome := svc.UserRegistered(context.Background(), event)

	require.NotNil(t, outcome.Email)
	require.Nil(t, outcome.SMS)
	require.False(t, outcome.Failed())
}

func TestUserRegistered_UsernameFallbackWhenNameMissing(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := &models.UserRegisteredEvent{
		SchemaVersion: models.SchemaVersion,
		EventUUID:     uuid.New(),
		Username:      "ali_r",
		EmailAddress:  "ali@example.com",
		PhoneNumber:   "+989121234567",
	}

	var sentEmail email.Message

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) models.NotificationResult {
			sentEmail = msg
			return models.SendSucceeded("ok")
		})
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	outcome := svc.UserRegistered(context.Background(), event)
	require.False(t, outcome.Failed())

	require.Contains(t, sentEmail.HTMLBody, "ali_r عزیز")
}

func TestDispatch_NoDeduperResendsDuplicates(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := checkoutEvent()

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok")).
		Times(2)
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok")).
		Times(2)

	first := svc.OrderCheckout(context.Background(), event)
	second := svc.OrderCheckout(context.Background(), event)

	require.NotNil(t, first.Email)
	require.NotNil(t, second.Email)
	require.NotNil(t, second.SMS)
}

func TestDispatch_DeduperSuppressesBothChannels(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deduper := mocks.NewMockDeduper(ctrl)
	svc, _, _ := newService(t, deduper)

	event := checkoutEvent()

	deduper.EXPECT().
		FirstDelivery(gomock.Any(), event.UUID(), channelEmail).
		Return(false)
	deduper.EXPECT().
		FirstDelivery(gomock.Any(), event.UUID(), channelSMS).
		Return(false)

	outcome := svc.OrderCheckout(context.Background(), event)

	require.Nil(t, outcome.Email)
	require.Nil(t, outcome.SMS)
	require.False(t, outcome.Failed())
}

func TestDispatch_DeduperSuppressesSingleChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deduper := mocks.NewMockDeduper(ctrl)
	svc, _, smsSender := newService(t, deduper)

	event := checkoutEvent()

	deduper.EXPECT().
		FirstDelivery(gomock.Any(), event.UUID(), channelEmail).
		Return(false)
	deduper.EXPECT().
		FirstDelivery(gomock.Any(), event.UUID(), channelSMS).
		Return(true)
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	outcome := svc.OrderCheckout(context.Background(), event)

	require.Nil(t, outcome.Email)
	require.NotNil(t, outcome.SMS)
	require.True(t, outcome.SMS.IsSuccess)
}

func TestDisplayNumber(t *testing.T) {
	tCases := []struct {
		name   string
		prefix string
		id     string
		exp    string
	}{
		{
			name:   "order_uuid",
			prefix: "ORD",
			id:     "a1b2c3d4-e5f6-7890-abcd-ef0123456789",
			exp:    "ORD-A1B2C3D4",
		},
		{
			name:   "payment_uuid",
			prefix: "PAY",
			id:     "deadbeef-0000-0000-0000-000000000000",
			exp:    "PAY-DEADBEEF",
		},
		{
			name:   "short_id",
			prefix: "ORD",
			id:     "ab12",
			exp:    "ORD-AB12",
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			require.Equal(t, tCase.exp, displayNumber(tCase.prefix, tCase.id))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tCases := []struct {
		name   string
		amount uint64
		exp    string
	}{
		{name: "zero", amount: 0, exp: "0"},
		{name: "under_thousand", amount: 999, exp: "999"},
		{name: "thousand", amount: 1000, exp: "1,000"},
		{name: "typical_order", amount: 150000, exp: "150,000"},
		{name: "millions", amount: 12345678, exp: "12,345,678"},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			require.Equal(t, tCase.exp, formatAmount(tCase.amount))
		})
	}
}

func TestFailureReason(t *testing.T) {
	persian := &models.PaymentProcessedEvent{FailureReasonPersian: "خطای بانکی", FailureReason: "declined"}
	require.Equal(t, "خطای بانکی", failureReason(persian))

	english := &models.PaymentProcessedEvent{FailureReason: "declined"}
	require.Equal(t, "declined", failureReason(english))

	unknown := &models.PaymentProcessedEvent{}
	require.Equal(t, "نامشخص", failureReason(unknown))
}

func TestOrderCheckout_CustomerNameTrimmed(t *testing.T) {
	svc, emailSender, smsSender := newService(t, nil)

	event := checkoutEvent()
	event.FirstName = ""
	event.LastName = "رضایی"

	var sentEmail email.Message

	emailSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) models.NotificationResult {
			sentEmail = msg
			return models.SendSucceeded("ok")
		})
	smsSender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(models.SendSucceeded("ok"))

	svc.OrderCheckout(context.Background(), event)

	require.False(t, strings.Contains(sentEmail.HTMLBody, " رضایی عزیز"))
	require.Contains(t, sentEmail.HTMLBody, "رضایی عزیز")
}
