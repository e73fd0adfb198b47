package notifications_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/audit"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

var _ = Describe("NotificationService", func() {
	var (
		ctx     context.Context
		st      *store.Store
		service *notifications.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		st, err = store.New(ctx, memory.New(), logger)
		Expect(err).ToNot(HaveOccurred())

		service = notifications.NewService(st, logger)
	})

	Describe("Add", func() {
		It("should prepend the newest notification unread", func() {
			// When
			service.Add(ctx, "order", "New order ORD-2026-0002", "/orders")
			service.Add(ctx, "quote", "Quote request from Rina", "/quotes")

			// Then
			list := service.List(ctx)
			Expect(list).To(HaveLen(2))
			Expect(list[0].Type).To(Equal("quote"))
			Expect(list[0].Read).To(BeFalse())
			Expect(list[0].ID).ToNot(BeEmpty())
			Expect(list[1].Type).To(Equal("order"))
		})
	})

	Describe("MarkRead", func() {
		It("should flag a single notification as read", func() {
			// Given
			service.Add(ctx, "order", "New order", "/orders")
			id := service.List(ctx)[0].ID

			// When
			outcome := service.MarkRead(ctx, id)

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(service.List(ctx)[0].Read).To(BeTrue())
		})

		Context("when the id is unknown", func() {
			It("should return not found", func() {
				// When
				outcome := service.MarkRead(ctx, "no-such-id")

				// Then
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
			})
		})
	})

	Describe("Clear", func() {
		It("should drop every notification", func() {
			// Given
			service.Add(ctx, "order", "one", "")
			service.Add(ctx, "order", "two", "")

			// When
			service.Clear(ctx)

			// Then
			Expect(service.List(ctx)).To(BeEmpty())
		})
	})

	Describe("activity log", func() {
		It("should record entries newest first", func() {
			// When
			service.LogActivity(ctx, "create product", "product #9", audit.ActivityCreate)
			service.LogActivity(ctx, "delete product", "product #9", audit.ActivityDelete)

			// Then
			log := service.Activity(ctx)
			Expect(log).To(HaveLen(2))
			Expect(log[0].Action).To(Equal("delete product"))
			Expect(log[1].Action).To(Equal("create product"))
		})

		It("should stamp entries with the System actor when unauthenticated", func() {
			// When
			service.LogActivity(ctx, "nightly cleanup", "", audit.ActivityUpdate)

			// Then
			Expect(service.Activity(ctx)[0].User).To(Equal("System"))
		})

		It("should stamp entries with the request actor when present", func() {
			// Given
			actorCtx := internal.ContextWithActor(ctx, &internal.Actor{UserID: 1, Name: "Sari Rahayu", Role: "Admin"})

			// When
			service.LogActivity(actorCtx, "update product", "product #2", audit.ActivityUpdate)

			// Then
			Expect(service.Activity(ctx)[0].User).To(Equal("Sari Rahayu"))
		})

		It("should evict the oldest entries past the fixed bound", func() {
			// Given: more writes than the log keeps
			for i := 0; i < audit.ActivityLogLimit+10; i++ {
				service.LogActivity(ctx, fmt.Sprintf("action %d", i), "", audit.ActivityUpdate)
			}

			// When
			log := service.Activity(ctx)

			// Then: capped, newest kept
			Expect(log).To(HaveLen(audit.ActivityLogLimit))
			Expect(log[0].Action).To(Equal(fmt.Sprintf("action %d", audit.ActivityLogLimit+9)))
			Expect(log[len(log)-1].Action).To(Equal("action 10"))
		})
	})
})
