package alert

import (
	"encoding/json"
	"fmt"
)

// Webhook - тело уведомления Alertmanager.
// Из всего конверта для сообщения используются только аннотации.
type Webhook struct {
	Version  string  `json:"version,omitempty"`
	Status   string  `json:"status,omitempty"`
	Receiver string  `json:"receiver,omitempty"`
	GroupKey string  `json:"groupKey,omitempty"`
	Alerts   []Alert `json:"alerts"`
}

// Alert - одно оповещение из группы
type Alert struct {
	Status      string         `json:"status,omitempty"`
	Labels      map[string]any `json:"labels,omitempty"`
	Annotations Annotations    `json:"annotations"`
}

// Name возвращает метку alertname или пустую строку
func (a Alert) Name() string {
	return stringify(a.Labels["alertname"])
}

// Annotations - человекочитаемые поля оповещения.
// Отсутствующие поля остаются пустыми строками, нестроковые значения
// приводятся к тексту, чтобы одно оповещение не отбрасывало всю группу.
type Annotations struct {
	Summary     string
	Description string
}

func (a *Annotations) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Summary = stringify(raw["summary"])
	a.Description = stringify(raw["description"])
	return nil
}

func (a Annotations) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"summary":     a.Summary,
		"description": a.Description,
	})
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
