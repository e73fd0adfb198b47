package catalog_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/catalog"
	catalogmodel "github.com/rahayucraft/studio-management/internal/core/datamodel/catalog"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
)

func TestCatalogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Service Suite")
}

var _ = Describe("CatalogService", func() {
	var (
		ctx     context.Context
		service *catalog.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		st, err := store.New(ctx, memory.New(), logger)
		Expect(err).ToNot(HaveOccurred())

		service = catalog.NewService(st, logger)
	})

	Describe("products", func() {
		It("should default a new product to active", func() {
			// When
			created, err := service.CreateProduct(ctx, catalog.CreateProductDTO{
				ID: 10, Name: "Celadon Vase", Category: "Ceramics", Price: 320_000, Stock: 3,
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(catalogmodel.ProductStatusActive))
		})

		It("should reject a duplicate product id", func() {
			// When
			_, err := service.CreateProduct(ctx, catalog.CreateProductDTO{
				ID: 1, Name: "Duplicate Mug", Price: 1, Stock: 1,
			})

			// Then
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateID))
		})

		It("should patch only the provided fields", func() {
			// Given
			stock := 40

			// When
			updated, outcome := service.UpdateProduct(ctx, 1, catalog.UpdateProductDTO{Stock: &stock})

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Stock).To(Equal(40))
			Expect(updated.Name).To(Equal("Hand-thrown Mug"))
			Expect(updated.Price).To(Equal(int64(85_000)))
		})

		Context("when the product does not exist", func() {
			It("should return not found on update and delete", func() {
				// When
				_, outcome := service.UpdateProduct(ctx, 404, catalog.UpdateProductDTO{})

				// Then
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
				Expect(service.DeleteProduct(ctx, 404)).To(Equal(internal.OutcomeNotFound))
			})
		})
	})

	Describe("suppliers", func() {
		It("should create the supplier as active", func() {
			// When
			created, err := service.CreateSupplier(ctx, catalog.CreateSupplierDTO{
				ID: 10, Name: "Kayu Jati Abadi", Category: "Wood",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal("active"))
		})

		It("should delete an existing supplier", func() {
			// When
			outcome := service.DeleteSupplier(ctx, 2)

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(service.ListSuppliers(ctx)).To(HaveLen(1))
		})
	})
})
