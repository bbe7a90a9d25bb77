package service

import (
	"errors"
	"log"

	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/internal/ws"
	"retail-pos-api/pkg/mailer"
	"retail-pos-api/pkg/metrics"

	"gorm.io/gorm"
)

// StockAlerter fires the low-stock side effects: a websocket event for live
// dashboards and, when the owner enabled it, an email to the admin address.
// Everything here is best-effort and never blocks or fails the caller.
type StockAlerter struct {
	settingsRepo repository.SettingsRepository
	mailer       mailer.Mailer
	hub          *ws.Hub
	metrics      *metrics.CheckoutMetrics
	storeName    string
}

func NewStockAlerter(settingsRepo repository.SettingsRepository, m mailer.Mailer, hub *ws.Hub, cm *metrics.CheckoutMetrics, storeName string) *StockAlerter {
	return &StockAlerter{
		settingsRepo: settingsRepo,
		mailer:       m,
		hub:          hub,
		metrics:      cm,
		storeName:    storeName,
	}
}

// NotifyLowStock is called after a mutation left product stock below the
// threshold. product carries the post-mutation stock value.
func (a *StockAlerter) NotifyLowStock(ownerID string, product model.Product) {
	a.hub.BroadcastJSON(map[string]interface{}{
		"type": "low_stock",
		"product": map[string]interface{}{
			"id":    product.ID,
			"name":  product.Name,
			"stock": product.Stock,
		},
	})

	settings, err := a.settingsRepo.FindByOwner(ownerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Low stock alert: failed to load settings for owner %s: %v", ownerID, err)
		}
		return
	}
	if !settings.Notifications.LowStockEmail || settings.AdminEmail == "" {
		return
	}

	err = a.mailer.SendLowStockAlert(settings.AdminEmail, mailer.LowStockProduct{
		ID:    product.ID.String(),
		Name:  product.Name,
		Stock: product.Stock,
	}, a.storeName)
	if err != nil {
		log.Printf("Low stock alert: send failed for product %s: %v", product.Name, err)
		return
	}
	if a.metrics != nil {
		a.metrics.LowStockAlerts.Inc()
	}
}
