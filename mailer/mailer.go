package mailer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// Mailer sends operational notifications. Every send is best-effort: a
// failure is logged and swallowed, never returned to the caller's caller.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	admins   []string
}

func NewFromEnv() *Mailer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	var admins []string
	for _, addr := range strings.Split(os.Getenv("ADMIN_NOTIFY_EMAILS"), ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			admins = append(admins, addr)
		}
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@meaculpadesigns.com"
	}
	return &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
		admins:   admins,
	}
}

// SendOrderNotification mails the admin list about a newly placed order.
func (m *Mailer) SendOrderNotification(order models.Order) {
	if m.host == "" || len(m.admins) == 0 {
		log.Warn().Str("order_number", order.OrderNumber).Msg("mailer not configured, skipping order notification")
		return
	}

	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%.2f TRY</td></tr>",
			item.ProductNameTR, item.Size, item.Quantity, item.UnitPrice)
	}
	body := fmt.Sprintf(`
		<h2>Yeni sipariş: %s</h2>
		<p>%s %s — %s</p>
		<table border="1" cellpadding="4">
			<tr><th>Ürün</th><th>Beden</th><th>Adet</th><th>Fiyat</th></tr>
			%s
		</table>
		<p>Ara toplam: %.2f TRY<br>İndirim: %.2f TRY<br>Kargo: %.2f TRY<br><b>Toplam: %.2f TRY</b></p>`,
		order.OrderNumber,
		order.ShippingAddress.FirstName, order.ShippingAddress.LastName, order.GuestEmail,
		lines.String(),
		order.Subtotal, order.Discount, order.ShippingCost, order.TotalAmount,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.admins...)
	msg.SetHeader("Subject", "Yeni sipariş "+order.OrderNumber)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("order notification email failed")
	}
}
