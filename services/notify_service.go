package services

import (
	"fmt"

	"inspection-app/config"

	"gopkg.in/gomail.v2"
)

// MailNotifier mengirim email pemberitahuan saat inspeksi selesai
// (security + checker lengkap). Gagal kirim hanya di-log.
type MailNotifier struct{}

func NewMailNotifier() *MailNotifier {
	return &MailNotifier{}
}

func (n *MailNotifier) InspectionCompleted(containerNo, utcNo, inspectorName string) {
	if config.SMTPHost == "" || len(config.NotifyEmails) == 0 {
		return
	}

	subject := "📦 Inspeksi Selesai " + containerNo
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Inspeksi container selesai diverifikasi</h3>
				<p>No Container: <strong>%s</strong></p>
				<p>No UTC: <strong>%s</strong></p>
				<p>Checker: <strong>%s</strong></p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, containerNo, utcNo, inspectorName)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", config.NotifyEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		fmt.Println("❌ Gagal mengirim email notifikasi:", err)
		return
	}

	fmt.Println("✅ Email notifikasi terkirim ke:", config.NotifyEmails)
}
