// Package notify defines the notification interface and implementations
// for low-price alert delivery.
package notify

import (
	"context"

	domain "github.com/donaldgifford/comp-pricer/pkg/types"
)

// AlertReason says why a decision raised an alert.
type AlertReason string

// Alert reasons.
const (
	ReasonSkipListing   AlertReason = "skip_listing"
	ReasonCannotCompete AlertReason = "cannot_compete"
)

// AlertPayload contains the data needed to send a low-price alert.
type AlertPayload struct {
	ProductID       string
	Brand           string
	ProductName     string
	Reason          AlertReason
	TargetDelivered string
	ItemPrice       string
	ShippingPrice   string
	Total           string
	CompsSource     domain.CompsSource
	Confidence      domain.MatchConfidence
	Warnings        []string
}

// Notifier defines the interface for sending low-price alerts.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
	SendBatchAlert(ctx context.Context, alerts []AlertPayload) error
}

// NewAlertPayload builds an alert from a decision. It returns nil when the
// decision does not warrant one.
func NewAlertPayload(p *domain.TrackedProduct, d *domain.DeliveredPricingDecision) *AlertPayload {
	var reason AlertReason
	switch {
	case d.SkipListing:
		reason = ReasonSkipListing
	case !d.CanCompete:
		reason = ReasonCannotCompete
	default:
		return nil
	}

	return &AlertPayload{
		ProductID:       p.ID,
		Brand:           p.Brand,
		ProductName:     p.ProductName,
		Reason:          reason,
		TargetDelivered: domain.FormatCents(d.TargetDeliveredCents),
		ItemPrice:       domain.FormatCents(d.FinalItemCents),
		ShippingPrice:   domain.FormatCents(d.FinalShipCents),
		Total:           domain.FormatCents(d.TotalCents()),
		CompsSource:     d.CompsSource,
		Confidence:      d.MatchConfidence,
		Warnings:        d.Warnings,
	}
}
