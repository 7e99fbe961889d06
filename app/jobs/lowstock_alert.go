// Package jobs holds queued background jobs and the event wiring that
// dispatches them. Alerting is fully decoupled from the fulfillment engine:
// the engine fires events, listeners inspect stock off the request path, and
// jobs deliver alerts to websocket subscribers.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/shashiranjanraj/vanij/pkg/logger"
	"github.com/shashiranjanraj/vanij/pkg/queue"
	"github.com/shashiranjanraj/vanij/pkg/ws"
)

// LowStockAlertJobName must match fmt.Sprintf("%T") of a dispatched job.
const LowStockAlertJobName = "*jobs.LowStockAlertJob"

// LowStockAlertJob broadcasts one low-stock alert to websocket subscribers.
// The exported fields are the serialized payload; the hub is attached by the
// registered factory after deserialization.
type LowStockAlertJob struct {
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	QuantityInStock int       `json:"quantityInStock"`
	Threshold       int       `json:"threshold"`
	DetectedAt      time.Time `json:"detectedAt"`

	hub *ws.Hub
}

// alertMessage is the wire shape pushed to subscribers.
type alertMessage struct {
	Type            string    `json:"type"`
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	QuantityInStock int       `json:"quantityInStock"`
	Threshold       int       `json:"threshold"`
	DetectedAt      time.Time `json:"detectedAt"`
}

func (j *LowStockAlertJob) Handle() error {
	if j.hub == nil {
		// No hub means no subscribers to notify; log and move on rather
		// than burn queue retries.
		logger.Warn("low stock alert with no hub attached", "product_id", j.ProductID)
		return nil
	}

	msg, err := json.Marshal(alertMessage{
		Type:            "low_stock",
		ProductID:       j.ProductID,
		Name:            j.Name,
		QuantityInStock: j.QuantityInStock,
		Threshold:       j.Threshold,
		DetectedAt:      j.DetectedAt,
	})
	if err != nil {
		return err
	}

	j.hub.Send(msg)
	logger.Info("low stock alert broadcast",
		"product_id", j.ProductID,
		"stock", j.QuantityInStock,
		"threshold", j.Threshold,
	)
	return nil
}

// RegisterLowStockAlertJob binds the job type to the queue with the hub
// attached to every deserialized instance.
func RegisterLowStockAlertJob(hub *ws.Hub) {
	queue.Register(LowStockAlertJobName, func() queue.Job {
		return &LowStockAlertJob{hub: hub}
	})
}
