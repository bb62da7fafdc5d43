package response

const (
	MessageSuccess = "Success"

	DefaultErrorMessage     = "Internal server error"
	InternalServerErrorCode = 500

	RateLimitedMessage = "Too many requests, please try again shortly"
	UnavailableMessage = "Service temporarily unavailable"

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)
