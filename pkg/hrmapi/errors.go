package hrmapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError — ошибка, о которой сообщил сервер HRM (HTTP статус не 2xx).
// Message берется из тела ответа, когда оно есть.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError извлекает сообщение из тела ответа сервера.
// Тело может быть JSON с полем message, произвольной строкой или пустым.
func newAPIError(statusCode int, body []byte) *APIError {
	text := strings.TrimSpace(string(body))

	var withMessage struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &withMessage); err == nil && withMessage.Message != "" {
		text = withMessage.Message
	}

	if text == "" {
		text = fmt.Sprintf("ошибка сервера: %d", statusCode)
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    text,
	}
}

// connectionError оборачивает транспортную ошибку (ответ не получен)
func connectionError(err error) error {
	return fmt.Errorf("нет соединения с сервером HRM: %v", err)
}
