package rabbitmq

const (
	USER_FORGOT_PASSWORD_QUEUE = "user-forgot-password"
)
