package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"

	"gridcalc/contracts"
)

const changeWorkersCount = 5

type changeEvent struct {
	Webhook string
	Payload ChangePayload
}

// ChangePayload is the webhook body: which sheet changed and, for single
// cell writes, the resulting cell.
type ChangePayload struct {
	Sheet string            `json:"sheet"`
	Cells []*contracts.Cell `json:"cells,omitempty"`
}

// WebhookChangeDispatcher posts one notification per mutating operation to
// the webhook subscribed to the changed sheet. Delivery is asynchronous on
// a small worker pool; a slow subscriber never blocks the engine.
type WebhookChangeDispatcher struct {
	queue chan changeEvent

	mu       sync.RWMutex
	webhooks map[string]string
}

func NewWebhookChangeDispatcher() *WebhookChangeDispatcher {
	return &WebhookChangeDispatcher{
		queue:    make(chan changeEvent, 20),
		webhooks: map[string]string{},
	}
}

func (d *WebhookChangeDispatcher) SetWebhookURL(sheet string, webhookURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if webhookURL == "" {
		delete(d.webhooks, sheet)
	} else {
		d.webhooks[sheet] = webhookURL
	}
}

func (d *WebhookChangeDispatcher) GetWebhookURL(sheet string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.webhooks[sheet]
}

func (d *WebhookChangeDispatcher) Notify(sheet string, cells []*contracts.Cell) {
	webhook := d.GetWebhookURL(sheet)
	if webhook == "" {
		return
	}

	go func() {
		d.queue <- changeEvent{
			Webhook: webhook,
			Payload: ChangePayload{Sheet: sheet, Cells: cells},
		}
	}()
}

func (d *WebhookChangeDispatcher) Start() {
	for i := 0; i < changeWorkersCount; i++ {
		go d.runSenderWorker()
	}
}

func (d *WebhookChangeDispatcher) Close() {
	close(d.queue)
}

func (d *WebhookChangeDispatcher) runSenderWorker() {
	client := &http.Client{
		Timeout: time.Second * 5,
	}

	for event := range d.queue {
		payload, _ := json.Marshal(event.Payload)
		response, err := client.Post(event.Webhook, "application/json", bytes.NewBuffer(payload))

		if err != nil {
			fmt.Printf("Webhook send error: %s\n", err)
		} else if response.StatusCode >= 300 {
			fmt.Printf("Unexpected webhook response HTTP status: %s\n", response.Status)
		}
	}
}
