package templates

import (
	"strings"

	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

// Template names used by the notification dispatcher.
const (
	OrderConfirmationEmail = "order_confirmation_email"
	OrderConfirmationSMS   = "order_confirmation_sms"
	PaymentSuccessEmail    = "payment_success_email"
	PaymentSuccessSMS      = "payment_success_sms"
	PaymentFailureEmail    = "payment_failure_email"
	PaymentFailureSMS      = "payment_failure_sms"
	WelcomeEmail           = "welcome_email"
	WelcomeSMS             = "welcome_sms"
)

// Registry holds the canned notification bodies. The map is built once at
// construction and never mutated afterwards, so Render is safe for concurrent
// use.
type Registry struct {
	log       logger.Logger
	templates map[string]string
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		log:       log,
		templates: defaultTemplates(),
	}
}

// Render substitutes {Token} placeholders with values from data. Substitution
// is literal: every occurrence of a present token is replaced, tokens absent
// from data stay in the output as-is. An unknown template name renders to an
// empty string.
func (r *Registry) Render(name string, data map[string]string) string {
	const op = "templates.Registry.Render"

	tmpl, ok := r.templates[name]
	if !ok {
		r.log.Warn(op, logger.String("unknown template", name))
		return ""
	}

	for token, value := range data {
		tmpl = strings.ReplaceAll(tmpl, "{"+token+"}", value)
	}

	return tmpl
}

func defaultTemplates() map[string]string {
	return map[string]string{
		OrderConfirmationEmail: `<div dir="rtl" style="font-family:Tahoma,Arial,sans-serif;background:#f5f5f5;padding:24px">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px">
    <h2 style="color:#2e7d32;margin-top:0">سفارش شما ثبت شد</h2>
    <p>{CustomerName} عزیز،</p>
    <p>سفارش شما با شماره <strong>{OrderNumber}</strong> با موفقیت ثبت شد.</p>
    <table style="width:100%;border-collapse:collapse;margin:16px 0">
      <tr><td style="padding:8px;border-bottom:1px solid #eeeeee">مبلغ کل</td><td style="padding:8px;border-bottom:1px solid #eeeeee">{TotalPrice} تومان</td></tr>
      <tr><td style="padding:8px">روش پرداخت</td><td style="padding:8px">{PaymentMethod}</td></tr>
    </table>
    <p style="color:#757575;font-size:12px">از خرید شما سپاسگزاریم.</p>
  </div>
</div>`,
		OrderConfirmationSMS: `{CustomerName} عزیز، سفارش {OrderNumber} به مبلغ {TotalPrice} تومان ثبت شد. فروشگاه تواکلی`,
		PaymentSuccessEmail: `<div dir="rtl" style="font-family:Tahoma,Arial,sans-serif;background:#f5f5f5;padding:24px">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px">
    <h2 style="color:#2e7d32;margin-top:0">پرداخت موفق</h2>
    <p>پرداخت <strong>{PaymentNumber}</strong> برای سفارش <strong>{OrderNumber}</strong> با موفقیت انجام شد.</p>
    <p>مبلغ: <strong>{TotalPrice}</strong> تومان</p>
    <p>روش پرداخت: {PaymentMethod}</p>
  </div>
</div>`,
		PaymentSuccessSMS: `پرداخت {PaymentNumber} برای سفارش {OrderNumber} به مبلغ {TotalPrice} تومان با موفقیت انجام شد.`,
		PaymentFailureEmail: `<div dir="rtl" style="font-family:Tahoma,Arial,sans-serif;background:#f5f5f5;padding:24px">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px">
    <h2 style="color:#c62828;margin-top:0">پرداخت ناموفق</h2>
    <p>پرداخت <strong>{PaymentNumber}</strong> برای سفارش <strong>{OrderNumber}</strong> انجام نشد.</p>
    <p>علت: {FailureReason}</p>
    <p style="color:#757575;font-size:12px">در صورت کسر وجه، مبلغ تا ۷۲ ساعت آینده بازگردانده می‌شود.</p>
  </div>
</div>`,
		PaymentFailureSMS: `پرداخت {PaymentNumber} ناموفق بود. علت: {FailureReason}`,
		WelcomeEmail: `<div dir="rtl" style="font-family:Tahoma,Arial,sans-serif;background:#f5f5f5;padding:24px">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px">
    <h2 style="color:#1565c0;margin-top:0">خوش آمدید</h2>
    <p>{CustomerName} عزیز، حساب کاربری شما با نام کاربری <strong>{Username}</strong> ساخته شد.</p>
  </div>
</div>`,
		WelcomeSMS: `{CustomerName} عزیز، به فروشگاه تواکلی خوش آمدید.`,
	}
}
