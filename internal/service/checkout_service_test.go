package service

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"retail-pos-api/internal/model"
	"retail-pos-api/pkg/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testOwner = "owner-1"

// ---- fakes -----------------------------------------------------------------

type fakeProductRepo struct {
	products      map[uuid.UUID]*model.Product
	failDecrement map[uuid.UUID]bool
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{
		products:      make(map[uuid.UUID]*model.Product),
		failDecrement: make(map[uuid.UUID]bool),
	}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindAll(ownerID string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(ownerID string, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *fakeProductRepo) FindByIDsForUpdate(tx *gorm.DB, ownerID string, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ownerID string, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(tx *gorm.DB, ownerID string, id uuid.UUID, quantity int) (bool, error) {
	if r.failDecrement[id] {
		return false, nil
	}
	p, ok := r.products[id]
	if !ok || p.OwnerID != ownerID || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (r *fakeProductRepo) stockOf(id uuid.UUID) int {
	return r.products[id].Stock
}

type fakeCustomerRepo struct {
	customers  map[uuid.UUID]*model.Customer
	failCreate bool
}

func newFakeCustomerRepo(customers ...*model.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
	for _, c := range customers {
		repo.customers[c.ID] = c
	}
	return repo
}

func (r *fakeCustomerRepo) Create(customer *model.Customer) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) FindAll(ownerID string) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByID(ownerID string, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *fakeCustomerRepo) FindByEmail(ownerID, email string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.OwnerID == ownerID && c.Email == email {
			copy := *c
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) Update(customer *model.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ownerID string, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok || c.OwnerID != ownerID {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}

type fakeSaleRepo struct {
	sales []*model.Sale
}

func (r *fakeSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) FindAll(ownerID string) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) FindByID(ownerID string, id uuid.UUID) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id && s.OwnerID == ownerID {
			copy := *s
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSettingsRepo struct {
	settings *model.StoreSettings
}

func (r *fakeSettingsRepo) FindByOwner(ownerID string) (*model.StoreSettings, error) {
	if r.settings == nil || r.settings.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *r.settings
	return &copy, nil
}

func (r *fakeSettingsRepo) Upsert(settings *model.StoreSettings) error {
	r.settings = settings
	return nil
}

type fakeMailer struct {
	sent []mailer.LowStockProduct
}

func (m *fakeMailer) SendLowStockAlert(adminEmail string, product mailer.LowStockProduct, storeName string) error {
	m.sent = append(m.sent, product)
	return nil
}

// fakeTxRunner emulates rollback: any error from the callback restores
// product stock and discards sales inserted during the callback.
type fakeTxRunner struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
}

func (r *fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	stockBefore := make(map[uuid.UUID]int, len(r.products.products))
	for id, p := range r.products.products {
		stockBefore[id] = p.Stock
	}
	salesBefore := len(r.sales.sales)

	if err := fc(nil); err != nil {
		for id, stock := range stockBefore {
			r.products.products[id].Stock = stock
		}
		r.sales.sales = r.sales.sales[:salesBefore]
		return err
	}
	return nil
}

// ---- harness ---------------------------------------------------------------

type checkoutFixture struct {
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	sales     *fakeSaleRepo
	service   CheckoutService
}

func newCheckoutFixture(products ...*model.Product) *checkoutFixture {
	productRepo := newFakeProductRepo(products...)
	customerRepo := newFakeCustomerRepo()
	saleRepo := &fakeSaleRepo{}
	alerter := NewStockAlerter(&fakeSettingsRepo{}, &fakeMailer{}, nil, nil, "Test Store")
	svc := NewCheckoutService(
		productRepo, customerRepo, saleRepo,
		&fakeTxRunner{products: productRepo, sales: saleRepo},
		alerter, nil, nil,
	)
	return &checkoutFixture{
		products:  productRepo,
		customers: customerRepo,
		sales:     saleRepo,
		service:   svc,
	}
}

func newProduct(name string, price float64, stock int) *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New()},
		OwnerID:   testOwner,
		Name:      name,
		Category:  "General",
		Price:     price,
		Stock:     stock,
	}
}

func cartLine(p *model.Product, qty int) CartItemInput {
	return CartItemInput{
		ProductID:   p.ID.String(),
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.Price,
	}
}

// ---- tests -----------------------------------------------------------------

func TestCreateSaleInsufficientStockListsAllShortfalls(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	productB := newProduct("Product B", 20, 2)
	f := newCheckoutFixture(productA, productB)

	_, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:           []CartItemInput{cartLine(productA, 3), cartLine(productB, 5)},
		Subtotal:        130,
		DiscountApplied: 10,
		DiscountAmount:  13,
		TotalAmount:     117,
	})
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Items, 1)
	assert.Equal(t, productB.ID.String(), stockErr.Items[0].ProductID)
	assert.Equal(t, "Product B", stockErr.Items[0].ProductName)
	assert.Equal(t, 5, stockErr.Items[0].Requested)
	assert.Equal(t, 2, stockErr.Items[0].Available)

	// No mutation happened at all
	assert.Equal(t, 5, f.products.stockOf(productA.ID))
	assert.Equal(t, 2, f.products.stockOf(productB.ID))
	assert.Empty(t, f.sales.sales)
}

func TestCreateSaleReportsEveryShortfallNotJustTheFirst(t *testing.T) {
	productA := newProduct("Product A", 10, 1)
	productB := newProduct("Product B", 20, 0)
	f := newCheckoutFixture(productA, productB)

	_, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(productA, 2), cartLine(productB, 1)},
		Subtotal: 40, TotalAmount: 40,
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Len(t, stockErr.Items, 2)
}

func TestCreateSaleSuccessDecrementsStockAndComputesTotals(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	productB := newProduct("Product B", 20, 2)
	f := newCheckoutFixture(productA, productB)

	sale, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:           []CartItemInput{cartLine(productA, 3), cartLine(productB, 2)},
		Subtotal:        70,
		DiscountApplied: 10,
		DiscountAmount:  7,
		TotalAmount:     63,
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, 70.0, sale.Subtotal)
	assert.Equal(t, 7.0, sale.DiscountAmount)
	assert.Equal(t, 63.0, sale.TotalAmount)
	assert.Equal(t, sale.Subtotal-sale.DiscountAmount, sale.TotalAmount)

	assert.Equal(t, 2, f.products.stockOf(productA.ID))
	assert.Equal(t, 0, f.products.stockOf(productB.ID))

	require.Len(t, sale.Items, 2)
	assert.Equal(t, 30.0, sale.Items[0].TotalPrice)
	assert.Equal(t, 40.0, sale.Items[1].TotalPrice)

	require.Len(t, f.sales.sales, 1)
	assert.True(t, strings.HasPrefix(sale.InvoiceNumber, "INV-"))
}

func TestCreateSaleUnknownProductFailsWithoutPartialSale(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	f := newCheckoutFixture(productA)

	ghost := newProduct("Ghost", 5, 1) // never stored
	_, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(productA, 1), cartLine(ghost, 1)},
		Subtotal: 15, TotalAmount: 15,
	})

	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Contains(t, err.Error(), "Ghost")
	assert.Equal(t, 5, f.products.stockOf(productA.ID))
	assert.Empty(t, f.sales.sales)
}

func TestCreateSaleReusesExistingCustomerByEmail(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	f := newCheckoutFixture(productA)

	existing := &model.Customer{
		BaseModel:       model.BaseModel{ID: uuid.New()},
		OwnerID:         testOwner,
		Name:            "Maya Stored",
		Email:           "maya@example.com",
		Phone:           "555-0100",
		PurchaseHistory: model.PurchaseHistory{},
	}
	f.customers.customers[existing.ID] = existing

	sale, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(productA, 1)},
		Subtotal: 10, TotalAmount: 10,
		Customer: &CustomerInfo{
			CustomerName:  "Maya Submitted",
			CustomerEmail: "maya@example.com",
			CustomerPhone: "555-9999",
		},
	})
	require.NoError(t, err)

	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, existing.ID, *sale.CustomerID)
	assert.Equal(t, "Maya Stored", sale.CustomerName)
	// Stored contact details win over submitted ones
	assert.Equal(t, "555-0100", sale.CustomerPhone)
	assert.Len(t, f.customers.customers, 1, "no duplicate customer")
}

func TestCreateSaleCreatesNewCustomer(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	f := newCheckoutFixture(productA)

	sale, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(productA, 1)},
		Subtotal: 10, TotalAmount: 10,
		Customer: &CustomerInfo{
			CustomerName:  "New Buyer",
			CustomerEmail: "new@example.com",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale.CustomerID)

	require.Len(t, f.customers.customers, 1)
	created := f.customers.customers[*sale.CustomerID]
	require.NotNil(t, created)
	assert.Equal(t, 0, created.LoyaltyPoints)
	assert.Empty(t, created.PurchaseHistory)
	assert.Equal(t, testOwner, created.OwnerID)
}

func TestCreateSaleProceedsAnonymouslyWhenCustomerCreateFails(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	f := newCheckoutFixture(productA)
	f.customers.failCreate = true

	sale, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(productA, 1)},
		Subtotal: 10, TotalAmount: 10,
		Customer: &CustomerInfo{
			CustomerName:  "Blocked Buyer",
			CustomerEmail: "blocked@example.com",
		},
	})
	require.NoError(t, err, "a failed customer upsert must not block the sale")

	assert.Nil(t, sale.CustomerID)
	assert.Equal(t, "Blocked Buyer", sale.CustomerName)
	assert.Equal(t, "blocked@example.com", sale.CustomerEmail)
	assert.Len(t, f.sales.sales, 1)
}

func TestCreateSaleRollsBackWhenDecrementMisses(t *testing.T) {
	productA := newProduct("Product A", 10, 5)
	productB := newProduct("Product B", 20, 4)
	f := newCheckoutFixture(productA, productB)
	f.products.failDecrement[productB.ID] = true

	_, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(productA, 2), cartLine(productB, 1)},
		Subtotal: 40, TotalAmount: 40,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product B")

	// The whole transaction rolled back: no orphaned sale, stock restored
	assert.Empty(t, f.sales.sales)
	assert.Equal(t, 5, f.products.stockOf(productA.ID))
	assert.Equal(t, 4, f.products.stockOf(productB.ID))
}

func TestCreateSaleRejectsMalformedProductID(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items: []CartItemInput{{
			ProductID:   "not-a-uuid",
			ProductName: "Broken",
			Quantity:    1,
		}},
	})
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestCreateSaleScopedToOwner(t *testing.T) {
	foreign := newProduct("Foreign", 10, 5)
	foreign.OwnerID = "someone-else"
	f := newCheckoutFixture(foreign)

	_, err := f.service.CreateSale(testOwner, &CreateSaleRequest{
		Items:    []CartItemInput{cartLine(foreign, 1)},
		Subtotal: 10, TotalAmount: 10,
	})

	// Not-owned is indistinguishable from not-found
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 5, f.products.stockOf(foreign.ID))
}

func TestGetSaleByIDNotFound(t *testing.T) {
	f := newCheckoutFixture()
	_, err := f.service.GetSaleByID(testOwner, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}
