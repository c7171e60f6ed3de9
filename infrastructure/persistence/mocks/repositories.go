package mocks

// Repositories bundles one in-memory instance of every repository.
type Repositories struct {
	Customers   *MockCustomerRepository
	Employees   *MockEmployeeRepository
	Roles       *MockRoleRepository
	Permissions *MockPermissionRepository
	Products    *MockProductRepository
	Orders      *MockOrderRepository
	Wishlists   *MockWishlistRepository
}

func NewRepositories() *Repositories {
	roles := NewMockRoleRepository()
	return &Repositories{
		Customers:   NewMockCustomerRepository(),
		Employees:   NewMockEmployeeRepository(),
		Roles:       roles,
		Permissions: NewMockPermissionRepository(roles),
		Products:    NewMockProductRepository(),
		Orders:      NewMockOrderRepository(),
		Wishlists:   NewMockWishlistRepository(),
	}
}
