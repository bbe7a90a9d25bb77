package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/internal/ws"
	"retail-pos-api/pkg/metrics"
	"retail-pos-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItemInput is one checkout line as submitted by the client. Prices are
// snapshots of the product at the time the cart was built.
type CartItemInput struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// CustomerInfo is the optional customer block on a checkout request. Either
// an existing customer id, or name+email for lookup-or-create.
type CustomerInfo struct {
	CustomerID      string `json:"customerId"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
}

type CreateSaleRequest struct {
	Items           []CartItemInput `json:"items" validate:"required,min=1,dive"`
	Subtotal        float64         `json:"subtotal" validate:"gte=0"`
	DiscountApplied float64         `json:"discountApplied" validate:"gte=0,lte=100"` // percentage
	DiscountAmount  float64         `json:"discountAmount" validate:"gte=0"`
	TotalAmount     float64         `json:"totalAmount" validate:"gte=0"`
	Customer        *CustomerInfo   `json:"customer"`
}

type CheckoutService interface {
	CreateSale(ownerID string, req *CreateSaleRequest) (*model.Sale, error)
	GetAllSales(ownerID string) ([]model.Sale, error)
	GetSaleByID(ownerID string, id uuid.UUID) (*model.Sale, error)
}

// txRunner is satisfied by *gorm.DB; tests substitute a fake that runs the
// callback without a database.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type checkoutService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	db           txRunner
	alerter      *StockAlerter
	hub          *ws.Hub
	metrics      *metrics.CheckoutMetrics
}

func NewCheckoutService(
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	sRepo repository.SaleRepository,
	db txRunner,
	alerter *StockAlerter,
	hub *ws.Hub,
	cm *metrics.CheckoutMetrics,
) CheckoutService {
	return &checkoutService{
		productRepo:  pRepo,
		customerRepo: cRepo,
		saleRepo:     sRepo,
		db:           db,
		alerter:      alerter,
		hub:          hub,
		metrics:      cm,
	}
}

// CreateSale runs the whole checkout as one transaction: lock and validate
// stock for every line, persist the sale with its snapshot items, then
// decrement stock per line with a conditional update. Any failure rolls the
// sale back; stock is untouched on shortfall. Customer resolution happens
// before the transaction and is non-fatal: a failed customer upsert never
// blocks the sale.
func (s *checkoutService) CreateSale(ownerID string, req *CreateSaleRequest) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		s.countFailure("validation")
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			s.countFailure("validation")
			return nil, fmt.Errorf("%w: product id %q", ErrInvalidID, item.ProductID)
		}
		productIDs = append(productIDs, id)
	}

	resolved := s.resolveCustomer(ownerID, req.Customer)

	now := time.Now()
	sale := &model.Sale{
		OwnerID:         ownerID,
		Date:            now,
		Subtotal:        req.Subtotal,
		DiscountApplied: req.DiscountApplied,
		DiscountAmount:  req.DiscountAmount,
		TotalAmount:     req.TotalAmount,
		InvoiceNumber:   NewInvoiceNumber(now),
		CustomerID:      resolved.id,
		CustomerName:    resolved.name,
		CustomerEmail:   resolved.email,
		CustomerPhone:   resolved.phone,
		CustomerAddress: resolved.address,
	}
	for i, item := range req.Items {
		sale.Items = append(sale.Items, model.SaleItem{
			ProductID:   productIDs[i],
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.UnitPrice * float64(item.Quantity),
		})
	}

	var lowStock []model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.FindByIDsForUpdate(tx, ownerID, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		var shortfalls []StockShortfall
		for i, item := range req.Items {
			product, ok := byID[productIDs[i]]
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductName)
			}
			if product.Stock < item.Quantity {
				shortfalls = append(shortfalls, StockShortfall{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Requested:   item.Quantity,
					Available:   product.Stock,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &InsufficientStockError{Items: shortfalls}
		}

		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		for i, item := range req.Items {
			matched, err := s.productRepo.DecrementStock(tx, ownerID, productIDs[i], item.Quantity)
			if err != nil {
				return err
			}
			if !matched {
				// The row was verified under lock moments ago, so a miss here
				// means it vanished or changed ownership mid-flight. Rolling
				// back undoes the sale insert as well.
				log.Printf("CRITICAL: product %s (%s) for owner %s did not match during stock decrement despite passing validation",
					item.ProductID, item.ProductName, ownerID)
				return fmt.Errorf("failed to update stock for product %q: it may have been modified or deleted", item.ProductName)
			}

			remaining := byID[productIDs[i]]
			remaining.Stock -= item.Quantity
			if remaining.IsLowStock() {
				lowStock = append(lowStock, remaining)
			}
		}
		return nil
	})
	if err != nil {
		s.countFailure(failureReason(err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SalesCompleted.Inc()
	}
	go s.hub.BroadcastJSON(map[string]interface{}{
		"type": "sale_completed",
		"sale": map[string]interface{}{
			"id":            sale.ID,
			"invoiceNumber": sale.InvoiceNumber,
			"totalAmount":   sale.TotalAmount,
			"itemCount":     len(sale.Items),
		},
	})
	for _, product := range lowStock {
		go s.alerter.NotifyLowStock(ownerID, product)
	}

	return sale, nil
}

func (s *checkoutService) GetAllSales(ownerID string) ([]model.Sale, error) {
	return s.saleRepo.FindAll(ownerID)
}

func (s *checkoutService) GetSaleByID(ownerID string, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sale, nil
}

// resolvedCustomer carries the denormalized customer fields stamped onto the
// sale, plus the customer id when one was matched or created.
type resolvedCustomer struct {
	id      *uuid.UUID
	name    string
	email   string
	phone   string
	address string
}

func (s *checkoutService) resolveCustomer(ownerID string, info *CustomerInfo) resolvedCustomer {
	if info == nil {
		return resolvedCustomer{}
	}
	out := resolvedCustomer{
		name:    info.CustomerName,
		email:   info.CustomerEmail,
		phone:   info.CustomerPhone,
		address: info.CustomerAddress,
	}

	// An explicitly selected customer wins; no lookup.
	if info.CustomerID != "" {
		if id, err := uuid.Parse(info.CustomerID); err == nil {
			out.id = &id
		}
		return out
	}
	if info.CustomerEmail == "" || info.CustomerName == "" {
		return out
	}

	existing, err := s.customerRepo.FindByEmail(ownerID, info.CustomerEmail)
	if err == nil {
		out.id = &existing.ID
		out.name = existing.Name
		out.email = existing.Email
		// Prefer stored contact details over submitted ones when present.
		if existing.Phone != "" {
			out.phone = existing.Phone
		}
		if existing.Address != "" {
			out.address = existing.Address
		}
		return out
	}

	customer := &model.Customer{
		OwnerID:         ownerID,
		Name:            info.CustomerName,
		Email:           info.CustomerEmail,
		Phone:           info.CustomerPhone,
		Address:         info.CustomerAddress,
		LoyaltyPoints:   0,
		PurchaseHistory: model.PurchaseHistory{},
	}
	if err := s.customerRepo.Create(customer); err != nil {
		// Non-fatal: proceed with an anonymous sale carrying the submitted fields.
		log.Printf("Failed to create customer during sale: %v", err)
		return out
	}
	out.id = &customer.ID
	return out
}

func (s *checkoutService) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.CheckoutFailures.WithLabelValues(reason).Inc()
	}
}

func failureReason(err error) string {
	var stockErr *InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	default:
		return "error"
	}
}
