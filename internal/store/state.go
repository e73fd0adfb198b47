package store

import (
	"github.com/rahayucraft/studio-management/internal/core/datamodel/audit"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/blog"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/catalog"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/employee"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/order"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/quote"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/returns"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/workshop"
)

// State holds every collection the store owns. Services mutate it only
// inside Store.Update, which serializes writers and persists the touched
// collections afterwards.
type State struct {
	Users           []user.User
	Employees       []employee.Employee
	Products        []catalog.Product
	Suppliers       []catalog.Supplier
	Workshops       []workshop.Workshop
	Orders          []order.Order
	Quotes          []quote.Quote
	Returns         []returns.Return
	BlogPosts       []blog.Post
	RolePermissions user.RolePermissions
	CurrentUser     *user.User
	Notifications   []audit.Notification
	ActivityLog     []audit.Entry
}

func (st *State) FindUser(id int64) *user.User {
	for i := range st.Users {
		if st.Users[i].ID == id {
			return &st.Users[i]
		}
	}
	return nil
}

func (st *State) FindUserByEmail(email string) *user.User {
	for i := range st.Users {
		if st.Users[i].Email == email {
			return &st.Users[i]
		}
	}
	return nil
}

func (st *State) FindEmployee(id int64) *employee.Employee {
	for i := range st.Employees {
		if st.Employees[i].ID == id {
			return &st.Employees[i]
		}
	}
	return nil
}

func (st *State) FindEmployeeByEmail(email string) *employee.Employee {
	for i := range st.Employees {
		if st.Employees[i].Email == email {
			return &st.Employees[i]
		}
	}
	return nil
}

func (st *State) FindProduct(id int64) *catalog.Product {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return &st.Products[i]
		}
	}
	return nil
}

func (st *State) FindSupplier(id int64) *catalog.Supplier {
	for i := range st.Suppliers {
		if st.Suppliers[i].ID == id {
			return &st.Suppliers[i]
		}
	}
	return nil
}

func (st *State) FindWorkshop(id int64) *workshop.Workshop {
	for i := range st.Workshops {
		if st.Workshops[i].ID == id {
			return &st.Workshops[i]
		}
	}
	return nil
}

func (st *State) FindOrder(id int64) *order.Order {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			return &st.Orders[i]
		}
	}
	return nil
}

func (st *State) FindQuote(id int64) *quote.Quote {
	for i := range st.Quotes {
		if st.Quotes[i].ID == id {
			return &st.Quotes[i]
		}
	}
	return nil
}

func (st *State) FindReturn(id int64) *returns.Return {
	for i := range st.Returns {
		if st.Returns[i].ID == id {
			return &st.Returns[i]
		}
	}
	return nil
}

func (st *State) FindBlogPost(id int64) *blog.Post {
	for i := range st.BlogPosts {
		if st.BlogPosts[i].ID == id {
			return &st.BlogPosts[i]
		}
	}
	return nil
}

// EffectivePermissions resolves the capabilities a user holds right now.
// Admin is implicitly all-true regardless of the stored mapping.
func (st *State) EffectivePermissions(u *user.User) user.PermissionSet {
	return user.Effective(u, st.RolePermissions)
}
