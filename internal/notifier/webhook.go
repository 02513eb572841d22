// Package notifier отправляет аудит-события на настроенный webhook.
// Отправка fire-and-forget: неудача только логируется, поток запроса
// никогда не блокируется и не падает из-за недоступного приёмника.
package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vulnshare/config"
)

type Event struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail"`
	AccountID int       `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier struct {
	url    string
	client *http.Client
}

func New(cfg *config.WebhookConfig) *Notifier {
	timeout := 5 * time.Second
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = d
		}
	}

	return &Notifier{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

// RoleEscalated : учётной записи подняли роль до moderator
func (n *Notifier) RoleEscalated(accountID int, email string) {
	n.send(Event{
		EventID:   uuid.New().String(),
		Kind:      "role_escalated",
		Detail:    "account " + email + " promoted to moderator",
		AccountID: accountID,
		CreatedAt: time.Now(),
	})
}

// StorageConstraint : нарушение ограничения БД (например, коллизия id)
func (n *Notifier) StorageConstraint(detail string) {
	n.send(Event{
		EventID:   uuid.New().String(),
		Kind:      "storage_constraint",
		Detail:    detail,
		CreatedAt: time.Now(),
	})
}

func (n *Notifier) send(event Event) {
	if n == nil || n.url == "" {
		return
	}

	go func() {
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("[Notifier] ошибка сериализации события: %v", err)
			return
		}

		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("[Notifier] ошибка отправки webhook: %v", err)
			return
		}
		resp.Body.Close()
	}()
}
