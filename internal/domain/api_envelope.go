package domain

// Общий конверт ответа API
type APIEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Утилиты для сборки конвертов
func Ok(data any) APIEnvelope { return APIEnvelope{Success: true, Data: data} }
func OkMsg(msg string, data any) APIEnvelope {
	return APIEnvelope{Success: true, Message: msg, Data: data}
}
func Fail(msg string) APIEnvelope { return APIEnvelope{Success: false, Message: msg} }
func FailDetail(msg, detail string) APIEnvelope {
	return APIEnvelope{Success: false, Message: msg, Error: detail}
}
