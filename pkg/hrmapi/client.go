package hrmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hr-admin-bot/internal/models"
)

// Client — клиент удаленного HRM REST API.
// Вся бизнес-логика (валидация, выдача идентификаторов, целостность)
// живет на сервере; клиент только ходит по его маршрутам.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// GetAllEmployees возвращает всех сотрудников subadmin-а
func (c *Client) GetAllEmployees(subadminID int64) ([]models.Employee, error) {
	reqURL := fmt.Sprintf("%s/api/employee/%d/employee/all", c.BaseURL, subadminID)

	var employees []models.Employee
	if err := c.doJSON(http.MethodGet, reqURL, nil, &employees); err != nil {
		return nil, err
	}

	return employees, nil
}

// AddEmployee создает сотрудника. Маршрут добавления принимает
// form-encoded тело — в отличие от остальных маршрутов с JSON.
func (c *Client) AddEmployee(subadminID int64, form url.Values) (*models.Employee, error) {
	reqURL := fmt.Sprintf("%s/api/subadmin/add-employee/%d", c.BaseURL, subadminID)

	req, err := http.NewRequest(http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}

	created := &models.Employee{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, created); err != nil {
			logrus.WithError(err).Warn("Failed to parse add-employee response")
		}
	}

	return created, nil
}

// UpdateEmployee обновляет существующего сотрудника (JSON тело)
func (c *Client) UpdateEmployee(subadminID, empID int64, emp *models.Employee) (*models.Employee, error) {
	reqURL := fmt.Sprintf("%s/api/employee/%d/update/%d", c.BaseURL, subadminID, empID)

	updated := &models.Employee{}
	if err := c.doJSON(http.MethodPut, reqURL, emp, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee удаляет сотрудника по идентификатору
func (c *Client) DeleteEmployee(subadminID, empID int64) error {
	reqURL := fmt.Sprintf("%s/api/employee/%d/delete/%d", c.BaseURL, subadminID, empID)

	req, err := http.NewRequest(http.MethodDelete, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Тело ответа — текст подтверждения, он не используется
	_, err = c.send(req)
	return err
}

// doJSON выполняет запрос с JSON телом (payload может быть nil)
// и декодирует JSON ответ в out (out может быть nil).
func (c *Client) doJSON(method, reqURL string, payload interface{}, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	body, err := c.send(req)
	if err != nil {
		return err
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("не удалось разобрать ответ сервера: %v", err)
		}
	}

	return nil
}

// send выполняет запрос и возвращает тело ответа.
// Транспортная ошибка и ошибка сервера различаются: первая значит,
// что ответа не было вовсе, вторая несет сообщение из тела.
func (c *Client) send(req *http.Request) ([]byte, error) {
	logrus.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("HRM API request")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, connectionError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}
