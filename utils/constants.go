package utils

// Application constants
const (
	// Application name
	AppName = "SMMPanel"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// OTP expiration (10 minutes)
	OTPExpiration = "10m"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8

	// Maximum password length
	MaxPasswordLength = 32
)

// User-facing messages (Vietnamese)
const (
	MsgInvalidInput        = "Dữ liệu không hợp lệ"
	MsgInvalidCredentials  = "Email hoặc mật khẩu không đúng"
	MsgUserBlocked         = "Tài khoản của bạn đã bị khóa"
	MsgUnauthorized        = "Bạn cần đăng nhập để tiếp tục"
	MsgForbidden           = "Bạn không có quyền truy cập"
	MsgInsufficientBalance = "Số dư không đủ. Vui lòng nạp thêm tiền"
	MsgQuantityOutOfRange  = "Số lượng nằm ngoài giới hạn cho phép"
	MsgServerNotFound      = "Máy chủ không tồn tại hoặc đã ngừng hoạt động"
	MsgServiceNotFound     = "Dịch vụ không tồn tại"
	MsgOrderNotFound       = "Không tìm thấy đơn hàng"
	MsgWalletNotFound      = "Không tìm thấy ví"
	MsgUserNotFound        = "Không tìm thấy người dùng"
	MsgTransactionNotFound = "Không tìm thấy giao dịch"
	MsgTicketNotFound      = "Không tìm thấy yêu cầu hỗ trợ"
	MsgAlreadyProcessed    = "Giao dịch đã được xử lý trước đó"
	MsgInternalError       = "Đã xảy ra lỗi. Vui lòng thử lại sau"
	MsgNoSpinsLeft         = "Bạn đã hết lượt quay hôm nay"
	MsgWheelNotConfigured  = "Vòng quay may mắn chưa được kích hoạt"
	MsgAccountDisabled     = "Tài khoản đã bị vô hiệu hóa"
	MsgEmailTaken          = "Email đã được sử dụng"
	MsgUsernameTaken       = "Tên đăng nhập đã được sử dụng"
	MsgOTPInvalid          = "Mã OTP không đúng"
	MsgOTPExpired          = "Mã OTP đã hết hạn. Vui lòng yêu cầu mã mới"
	MsgEmailNotVerified    = "Tài khoản chưa được xác minh. Vui lòng kiểm tra email"
	MsgTopupNotFound       = "Không tìm thấy giao dịch nạp tiền"
	MsgInvalidSignature    = "Chữ ký thanh toán không hợp lệ"
)
