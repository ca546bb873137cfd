package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes alerts to the service log. It stands in for a webhook
// backend so alerts stay visible when none is configured.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a notifier that logs alerts at warn level.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "notify")}
}

// SendAlert logs one alert.
func (n *LogNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	n.log.WarnContext(ctx, "low-price alert", alertAttrs(alert)...)
	return nil
}

// SendBatchAlert logs each alert in the batch. An empty batch logs nothing.
func (n *LogNotifier) SendBatchAlert(ctx context.Context, alerts []AlertPayload) error {
	for i := range alerts {
		attrs := append(alertAttrs(&alerts[i]), "batch_size", len(alerts))
		n.log.WarnContext(ctx, "low-price alert", attrs...)
	}
	return nil
}

func alertAttrs(a *AlertPayload) []any {
	return []any{
		"product", a.ProductID,
		"brand", a.Brand,
		"name", a.ProductName,
		"reason", string(a.Reason),
		"target", a.TargetDelivered,
		"total", a.Total,
		"comps_source", string(a.CompsSource),
	}
}
