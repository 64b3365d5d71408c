package service

import (
	"context"

	"gorm.io/gorm"

	"ferrum/backend/internal/model"
	"ferrum/backend/internal/repository"
)

// ── 手写内存 Mock（不依赖数据库） ──

type mockUserRepo struct {
	users []model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.users = append(m.users, *user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].UserID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for i := range m.users {
		if m.users[i].UserID == user.UserID {
			m.users[i] = *user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockResourceRepo struct {
	resources []model.Resource
}

func (m *mockResourceRepo) Create(_ context.Context, res *model.Resource) error {
	if res.ResourceID == "" {
		res.ResourceID = "res-new"
	}
	m.resources = append(m.resources, *res)
	return nil
}

func (m *mockResourceRepo) GetByID(_ context.Context, id string) (*model.Resource, error) {
	for i := range m.resources {
		if m.resources[i].ResourceID == id {
			r := m.resources[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResourceRepo) List(_ context.Context, includeFired bool) ([]model.Resource, error) {
	if includeFired {
		return m.resources, nil
	}
	var active []model.Resource
	for _, r := range m.resources {
		if r.Status == model.ResourceStatusActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (m *mockResourceRepo) Update(_ context.Context, res *model.Resource) error {
	for i := range m.resources {
		if m.resources[i].ResourceID == res.ResourceID {
			m.resources[i] = *res
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockResourceRepo) Delete(_ context.Context, id string) error {
	for i := range m.resources {
		if m.resources[i].ResourceID == id {
			m.resources = append(m.resources[:i], m.resources[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockOrderRepo struct {
	orders []model.Order
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	if order.OrderID == "" {
		order.OrderID = "order-new"
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) List(_ context.Context, _ repository.OrderFilter) ([]model.Order, int64, error) {
	return m.orders, int64(len(m.orders)), nil
}

func (m *mockOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	return m.orders, nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *model.Order) error {
	for i := range m.orders {
		if m.orders[i].OrderID == order.OrderID {
			m.orders[i] = *order
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockProductRepo struct {
	products []model.Product
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	if product.ProductID == "" {
		product.ProductID = "product-new"
	}
	m.products = append(m.products, *product)
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	for i := range m.products {
		if m.products[i].ProductID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]model.Product, int64, error) {
	return m.products, int64(len(m.products)), nil
}

func (m *mockProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	return m.products, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *model.Product) error {
	for i := range m.products {
		if m.products[i].ProductID == product.ProductID {
			m.products[i] = *product
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProductRepo) ReplaceOperations(_ context.Context, productID string, operations []model.Operation) error {
	for i := range m.products {
		if m.products[i].ProductID == productID {
			for j := range operations {
				operations[j].ProductID = productID
				operations[j].SortOrder = j
			}
			m.products[i].Operations = operations
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	for i := range m.products {
		if m.products[i].ProductID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// newMockRepository 组装全 Mock 的 Repository 聚合
func newMockRepository(users *mockUserRepo, resources *mockResourceRepo, orders *mockOrderRepo, products *mockProductRepo) *repository.Repository {
	if users == nil {
		users = &mockUserRepo{}
	}
	if resources == nil {
		resources = &mockResourceRepo{}
	}
	if orders == nil {
		orders = &mockOrderRepo{}
	}
	if products == nil {
		products = &mockProductRepo{}
	}
	return &repository.Repository{
		User:     users,
		Resource: resources,
		Order:    orders,
		Product:  products,
	}
}
