package returns_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal"
	returnsmodel "github.com/rahayucraft/studio-management/internal/core/datamodel/returns"
	"github.com/rahayucraft/studio-management/internal/core/events"
	"github.com/rahayucraft/studio-management/internal/returns"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
)

func TestReturnService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Return Service Suite")
}

var _ = Describe("ReturnService", func() {
	var (
		ctx     context.Context
		st      *store.Store
		bus     *events.EventBus
		service *returns.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		st, err = store.New(ctx, memory.New(), logger)
		Expect(err).ToNot(HaveOccurred())

		bus = events.NewEventBus(logger)
		service = returns.NewService(st, bus, logger)
	})

	Describe("Create", func() {
		It("should open the return as Pending with a default window", func() {
			// When
			created, err := service.Create(ctx, returns.CreateReturnDTO{
				ID:          2,
				OrderNumber: "ORD-2026-0002",
				UserID:      3,
				Products:    []returnsmodel.Item{{Name: "Batik Scarf", Quantity: 1, Condition: "wrong color"}},
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(returnsmodel.StatusPending))
			Expect(created.DaysLeft).To(Equal(14))
			Expect(created.RequestDate).ToNot(BeEmpty())
		})

		It("should announce the request as a notification", func() {
			// When
			_, err := service.Create(ctx, returns.CreateReturnDTO{
				ID:          2,
				OrderNumber: "ORD-2026-0002",
				UserID:      3,
				Products:    []returnsmodel.Item{{Name: "Batik Scarf", Quantity: 1}},
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			st.View(func(s *store.State) {
				Expect(s.Notifications).ToNot(BeEmpty())
				Expect(s.Notifications[0].Message).To(ContainSubstring("ORD-2026-0002"))
			})
		})

		Context("when no products are listed", func() {
			It("should fail validation", func() {
				// When
				_, err := service.Create(ctx, returns.CreateReturnDTO{
					ID: 2, OrderNumber: "ORD-2026-0002", UserID: 3,
				})

				// Then
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Respond", func() {
		It("should approve the return and stamp the decision", func() {
			// Given: seed return 1 is pending
			dto := returns.RespondDTO{
				Approved: true,
				Reason:   "Damage confirmed from photos",
				Message:  "Refund will be issued within 5 business days",
			}

			// When
			updated, outcome, err := service.Respond(ctx, 1, dto)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Status).To(Equal(returnsmodel.StatusApproved))
			Expect(updated.ProcessedDate).ToNot(BeEmpty())
			Expect(updated.AdminResponse).ToNot(BeNil())
			Expect(updated.AdminResponse.Approved).To(BeTrue())
			Expect(updated.AdminResponse.Reason).To(Equal(dto.Reason))
		})

		It("should reject the return when not approved", func() {
			// When
			updated, outcome, err := service.Respond(ctx, 1, returns.RespondDTO{
				Approved:    false,
				Reason:      "Outside the return window",
				Alternative: "Store credit offered",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Status).To(Equal(returnsmodel.StatusRejected))
			Expect(updated.AdminResponse.Alternative).To(Equal("Store credit offered"))
		})

		It("should publish the dispatch event after the transition commits", func() {
			// Given
			received := make(chan events.Event, 1)
			bus.Subscribe(events.EventTypeReturnResponded, func(_ context.Context, e events.Event) error {
				received <- e
				return nil
			})

			// When
			_, outcome, err := service.Respond(ctx, 1, returns.RespondDTO{
				Approved: true,
				Reason:   "Damage confirmed",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))

			var event events.Event
			Eventually(received).Should(Receive(&event))
			responded, ok := event.(*events.ReturnRespondedEvent)
			Expect(ok).To(BeTrue())
			Expect(responded.ReturnID).To(Equal(int64(1)))
			Expect(responded.Email).To(Equal("dewi.lestari@mail.com"))
			Expect(responded.Approved).To(BeTrue())
		})

		It("should keep the committed status when the dispatch handler fails", func() {
			// Given: the email side of the bus is broken
			bus.Subscribe(events.EventTypeReturnResponded, func(context.Context, events.Event) error {
				return errors.New("smtp relay unreachable")
			})

			// When
			updated, outcome, err := service.Respond(ctx, 1, returns.RespondDTO{
				Approved: true,
				Reason:   "Damage confirmed",
			})

			// Then: delivery failure never reverts the decision
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Status).To(Equal(returnsmodel.StatusApproved))

			Consistently(func() string {
				var status string
				st.View(func(s *store.State) {
					status = s.FindReturn(1).Status
				})
				return status
			}).Should(Equal(returnsmodel.StatusApproved))
		})

		Context("when the reason is missing", func() {
			It("should fail validation without touching the return", func() {
				// When
				_, _, err := service.Respond(ctx, 1, returns.RespondDTO{Approved: true})

				// Then
				Expect(err).To(HaveOccurred())
				st.View(func(s *store.State) {
					Expect(s.FindReturn(1).Status).To(Equal(returnsmodel.StatusPending))
				})
			})
		})

		Context("when the return does not exist", func() {
			It("should return not found", func() {
				// When
				_, outcome, err := service.Respond(ctx, 404, returns.RespondDTO{Approved: true, Reason: "n/a"})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
			})
		})
	})

	Describe("MarkRefunded", func() {
		It("should move an approved return to Refunded", func() {
			// Given
			_, _, err := service.Respond(ctx, 1, returns.RespondDTO{Approved: true, Reason: "Damage confirmed"})
			Expect(err).ToNot(HaveOccurred())

			// When
			updated, outcome, err := service.MarkRefunded(ctx, 1)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Status).To(Equal(returnsmodel.StatusRefunded))
		})

		Context("when the return is still pending", func() {
			It("should fail the precondition and keep the status", func() {
				// When
				_, outcome, err := service.MarkRefunded(ctx, 1)

				// Then
				Expect(outcome).To(Equal(internal.OutcomePreconditionFailed))
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypePrecondition))

				st.View(func(s *store.State) {
					Expect(s.FindReturn(1).Status).To(Equal(returnsmodel.StatusPending))
				})
			})
		})

		Context("when the return was rejected", func() {
			It("should fail the precondition", func() {
				// Given
				_, _, err := service.Respond(ctx, 1, returns.RespondDTO{Approved: false, Reason: "Outside window"})
				Expect(err).ToNot(HaveOccurred())

				// When
				_, outcome, _ := service.MarkRefunded(ctx, 1)

				// Then
				Expect(outcome).To(Equal(internal.OutcomePreconditionFailed))
			})
		})
	})
})
