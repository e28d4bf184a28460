package http

const (
	KeyHeaderContentType = "Content-Type"
	KeyHeaderRequestID   = "X-Request-Id"
	KeyHeaderAuthorize   = "Authorization"
	ValueHeaderJson      = "application/json"
	ValueBearerPrefix    = "bearer "
	StatusSuccess        = "success"
	StatusFailed         = "failed"
)
