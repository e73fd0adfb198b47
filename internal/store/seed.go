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

// DefaultRolePermissions is the mapping shipped on first boot. Admin is
// absent on purpose: its permissions are computed, never stored.
func DefaultRolePermissions() user.RolePermissions {
	return user.RolePermissions{
		user.RoleEmployee: {
			ManageInventory: true,
			ManageOrders:    true,
			ManageReturns:   true,
			ManageServices:  true,
			ManageQuotes:    true,
			ManageWorkshops: true,
			ManageBlog:      true,
		},
		user.RoleCustomer: user.NoPermissions(),
		user.RoleStudent:  user.NoPermissions(),
	}
}

// DefaultState is the fixed dataset collections fall back to when durable
// storage has no prior write for them.
func DefaultState() State {
	return State{
		Users: []user.User{
			{ID: 1, Name: "Sari Rahayu", Email: "sari@rahayucraft.id", Phone: "+62 812 3456 7890", Role: user.RoleAdmin, Status: user.StatusActive},
			{ID: 2, Name: "Budi Santoso", Email: "budi@rahayucraft.id", Phone: "+62 813 2233 4455", Role: user.RoleEmployee, Status: user.StatusActive},
			{ID: 3, Name: "Dewi Lestari", Email: "dewi.lestari@mail.com", Phone: "+62 856 7788 9900", Role: user.RoleCustomer, Status: user.StatusActive, Orders: 2},
			{ID: 4, Name: "Agus Wijaya", Email: "agus.wijaya@mail.com", Role: user.RoleCustomer, Status: user.StatusInactive},
		},
		Employees: []employee.Employee{
			{
				ID: 1, Name: "Budi Santoso", Email: "budi@rahayucraft.id", Phone: "+62 813 2233 4455",
				Position: "Ceramics Instructor", Salary: 3_500_000, Schedule: "Tue-Sat 10:00-18:00",
				HireDate: "2023-04-01", Status: employee.DefaultStatus,
				EmergencyContact: employee.EmergencyContact{Name: "Rina Santoso", Phone: "+62 813 9988 7766"},
				Certifications:   []string{"Studio Safety", "Kiln Operation"},
			},
		},
		Products: []catalog.Product{
			{ID: 1, Name: "Hand-thrown Mug", Category: "Ceramics", Price: 85_000, Stock: 24, Status: catalog.ProductStatusActive},
			{ID: 2, Name: "Woven Wall Hanging", Category: "Textiles", Price: 240_000, Stock: 6, Status: catalog.ProductStatusActive},
			{ID: 3, Name: "Batik Scarf", Category: "Textiles", Price: 150_000, Stock: 15, Status: catalog.ProductStatusActive},
			{ID: 4, Name: "Glaze Sample Set", Category: "Supplies", Price: 60_000, Stock: 0, Status: catalog.ProductStatusInactive},
		},
		Suppliers: []catalog.Supplier{
			{ID: 1, Name: "Tanah Liat Nusantara", ContactName: "Pak Hendra", Email: "sales@tanahliat.co.id", Category: "Clay", Status: "active"},
			{ID: 2, Name: "Benang Emas", ContactName: "Ibu Wulan", Email: "order@benangemas.id", Category: "Yarn", Status: "active"},
		},
		Workshops: []workshop.Workshop{
			{
				ID: 1, Name: "Intro to Wheel Throwing", Instructor: "Budi Santoso",
				Date: "2026-09-20", Duration: "3h", MaxCapacity: 8, Students: 0,
				Price: 350_000, Status: workshop.StatusScheduled, EnrolledUsers: []workshop.Enrollment{},
			},
			{
				ID: 2, Name: "Natural Dye Batik", Instructor: "Sari Rahayu",
				Date: "2026-10-04", Duration: "4h", MaxCapacity: 6, Students: 0,
				Price: 420_000, Status: workshop.StatusScheduled, EnrolledUsers: []workshop.Enrollment{},
			},
		},
		Orders: []order.Order{
			{
				ID: 1, OrderNumber: "ORD-2026-0001", UserID: int64Ptr(3),
				CustomerName: "Dewi Lestari", CustomerEmail: "dewi.lestari@mail.com",
				Products: []order.Item{{ProductID: 1, Name: "Hand-thrown Mug", Quantity: 2, Price: 85_000}},
				Total:    170_000, Status: order.StatusConfirmed, Date: "2026-08-14",
			},
		},
		Quotes: []quote.Quote{
			{ID: 1, CustomerName: "Rina Kartika", CustomerEmail: "rina.k@mail.com", Service: "Custom dinnerware set", Status: quote.StatusPending, DaysLeft: 7, RequestDate: "2026-08-25"},
		},
		Returns: []returns.Return{
			{
				ID: 1, OrderNumber: "ORD-2026-0001", UserID: 3, CustomerName: "Dewi Lestari",
				Reason: "Chipped on arrival", Status: returns.StatusPending, RequestDate: "2026-08-20", DaysLeft: 10,
				Products: []returns.Item{{Name: "Hand-thrown Mug", Quantity: 1, Condition: "damaged"}},
			},
		},
		BlogPosts: []blog.Post{
			{ID: 1, Title: "Firing Schedule for September", Author: "Sari Rahayu", Status: blog.StatusPublished, PublishedAt: "2026-08-30"},
			{ID: 2, Title: "Choosing Your First Clay Body", Author: "Budi Santoso", Status: blog.StatusDraft},
		},
		RolePermissions: DefaultRolePermissions(),
		Notifications:   []audit.Notification{},
		ActivityLog:     []audit.Entry{},
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
