package api

// HeaderAPIKey заголовок со статическим ключом доступа
const HeaderAPIKey = "X-API-Key"

// Заголовки подсказки о сбросе rate limit
const (
	HeaderRetryAfter     = "Retry-After"
	HeaderRateLimitReset = "X-RateLimit-Reset"
)

// Сообщения об ошибках аутентификации
const (
	MsgAPIKeyRequired = "API key is required. Provide it in the X-API-Key header"
	MsgInvalidAPIKey  = "Invalid API key"
)

// Коды ошибок провайдера, которые понимает классификатор клиента
const (
	CodeAccessDenied = "AccessDeniedException"
	CodeThrottling   = "ThrottlingException"
	CodeValidation   = "ValidationException"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`          // описание ошибки
	Code    string `json:"code,omitempty"` // код ошибки провайдера
	Success bool   `json:"success"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
