package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email through the configured SMTP relay
func SendEmail(to, subject, body string) error {
	config := loadEmailConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOTP sends a registration OTP via email
func SendOTP(to, otp string) error {
	body := fmt.Sprintf(`
		<h2>Chào mừng bạn đến với SMMPanel!</h2>
		<p>Vui lòng sử dụng mã OTP sau để xác minh địa chỉ email của bạn:</p>
		<h1 style="color: #4CAF50; font-size: 32px; letter-spacing: 5px;">%s</h1>
		<p>Mã OTP sẽ hết hạn sau 10 phút.</p>
		<p>Nếu bạn không yêu cầu mã này, vui lòng bỏ qua email.</p>
	`, otp)
	return SendEmail(to, "Mã xác minh SMMPanel", body)
}

// SendDepositApprovedEmail notifies a user that a deposit was credited
func SendDepositApprovedEmail(to string, amount, balance float64) error {
	body := fmt.Sprintf(`
		<h2>Nạp tiền thành công</h2>
		<p>Yêu cầu nạp tiền của bạn đã được duyệt.</p>
		<p>Số tiền: <b>%.0f</b></p>
		<p>Số dư hiện tại: <b>%.0f</b></p>
	`, amount, balance)
	return SendEmail(to, "SMMPanel - Nạp tiền thành công", body)
}

// SendTicketReplyEmail notifies a user of a new support reply
func SendTicketReplyEmail(to, subject string) error {
	body := fmt.Sprintf(`
		<h2>Yêu cầu hỗ trợ của bạn có phản hồi mới</h2>
		<p>Tiêu đề: <b>%s</b></p>
		<p>Vui lòng đăng nhập để xem chi tiết.</p>
	`, subject)
	return SendEmail(to, "SMMPanel - Phản hồi hỗ trợ", body)
}
