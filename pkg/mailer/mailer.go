package mailer

import (
	"fmt"
	"log"
)

// LowStockProduct is the minimal product descriptor carried by an alert.
type LowStockProduct struct {
	ID    string
	Name  string
	Stock int
}

// Mailer is the outbound notification side channel. Sends are best-effort;
// callers must never let a failed send block checkout.
type Mailer interface {
	SendLowStockAlert(adminEmail string, product LowStockProduct, storeName string) error
}

// LogMailer renders the alert and writes it to the process log instead of
// handing it to an SMTP relay.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendLowStockAlert(adminEmail string, product LowStockProduct, storeName string) error {
	if adminEmail == "" {
		log.Printf("Low stock notification: admin email not configured, skipping alert for product %s (ID: %s, stock: %d)",
			product.Name, product.ID, product.Stock)
		return nil
	}

	subject := fmt.Sprintf("Low Stock Alert: %s at %s", product.Name, storeName)
	body := fmt.Sprintf(
		"Hello Admin,\n"+
			"Stock for product %q (ID: %s) is running low.\n"+
			"Current stock: %d\n"+
			"Please restock this item.\n"+
			"Your %s system",
		product.Name, product.ID, product.Stock, storeName)

	log.Printf("Sending low stock email\nTo: %s\nSubject: %s\nBody:\n%s", adminEmail, subject, body)
	return nil
}
