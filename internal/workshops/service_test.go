package workshops_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/workshop"
	"github.com/rahayucraft/studio-management/internal/storage/memory"
	"github.com/rahayucraft/studio-management/internal/store"
	"github.com/rahayucraft/studio-management/internal/workshops"
)

func TestWorkshopService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Workshop Service Suite")
}

var _ = Describe("WorkshopService", func() {
	var (
		ctx     context.Context
		st      *store.Store
		service *workshops.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		st, err = store.New(ctx, memory.New(), logger)
		Expect(err).ToNot(HaveOccurred())

		service = workshops.NewService(st, logger)
	})

	Describe("Create", func() {
		It("should create a scheduled workshop", func() {
			// Given
			dto := workshops.CreateWorkshopDTO{
				ID:          10,
				Name:        "Glaze Chemistry Basics",
				Instructor:  "Budi Santoso",
				Date:        "2026-11-07",
				MaxCapacity: 12,
				Price:       275_000,
			}

			// When
			created, err := service.Create(ctx, dto)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(workshop.StatusScheduled))
			Expect(created.Students).To(BeZero())
			Expect(created.EnrolledUsers).To(BeEmpty())
		})

		Context("when the id is already taken", func() {
			It("should reject the workshop with a conflict", func() {
				// Given: seed workshop 1 exists
				dto := workshops.CreateWorkshopDTO{
					ID: 1, Name: "Duplicate", Date: "2026-11-07", MaxCapacity: 5,
				}

				// When
				_, err := service.Create(ctx, dto)

				// Then
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateID))
			})
		})

		Context("when the capacity is not positive", func() {
			It("should fail validation", func() {
				// When
				_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
					ID: 11, Name: "No Seats", Date: "2026-11-07", MaxCapacity: 0,
				})

				// Then
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Update", func() {
		It("should reject shrinking capacity below current enrollment", func() {
			// Given: three seats, two taken
			_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
				ID: 30, Name: "Slip Casting", Date: "2026-12-05", MaxCapacity: 3, Price: 200_000,
			})
			Expect(err).ToNot(HaveOccurred())
			_, _, err = service.Enroll(ctx, 30, 2, workshops.EnrollmentDTO{UserID: 2})
			Expect(err).ToNot(HaveOccurred())
			_, _, err = service.Enroll(ctx, 30, 3, workshops.EnrollmentDTO{UserID: 3})
			Expect(err).ToNot(HaveOccurred())

			// When
			capacity := 1
			_, outcome, err := service.Update(ctx, 30, workshops.UpdateWorkshopDTO{MaxCapacity: &capacity})

			// Then
			Expect(outcome).To(Equal(internal.OutcomePreconditionFailed))
			Expect(err).To(Equal(internal.ErrCapacityBelowEnrollment))
			st.View(func(s *store.State) {
				w := s.FindWorkshop(30)
				Expect(w.MaxCapacity).To(Equal(3))
				Expect(w.Students).To(Equal(2))
			})
		})

		It("should flip to Full when capacity shrinks down to the enrollment", func() {
			// Given
			_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
				ID: 31, Name: "Kintsugi Repair", Date: "2026-12-12", MaxCapacity: 4, Price: 300_000,
			})
			Expect(err).ToNot(HaveOccurred())
			_, _, err = service.Enroll(ctx, 31, 2, workshops.EnrollmentDTO{UserID: 2})
			Expect(err).ToNot(HaveOccurred())
			_, _, err = service.Enroll(ctx, 31, 3, workshops.EnrollmentDTO{UserID: 3})
			Expect(err).ToNot(HaveOccurred())

			// When
			capacity := 2
			updated, outcome, err := service.Update(ctx, 31, workshops.UpdateWorkshopDTO{MaxCapacity: &capacity})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Status).To(Equal(workshop.StatusFull))
		})

		It("should reopen a Full workshop when capacity is raised", func() {
			// Given: a one-seat workshop at capacity
			_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
				ID: 32, Name: "Sgraffito", Date: "2026-12-19", MaxCapacity: 1, Price: 150_000,
			})
			Expect(err).ToNot(HaveOccurred())
			full, _, err := service.Enroll(ctx, 32, 2, workshops.EnrollmentDTO{UserID: 2})
			Expect(err).ToNot(HaveOccurred())
			Expect(full.Status).To(Equal(workshop.StatusFull))

			// When
			capacity := 3
			updated, outcome, err := service.Update(ctx, 32, workshops.UpdateWorkshopDTO{MaxCapacity: &capacity})

			// Then: the status re-derives and a new seat is usable
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(updated.Status).To(Equal(workshop.StatusScheduled))
			_, enrollOutcome, err := service.Enroll(ctx, 32, 3, workshops.EnrollmentDTO{UserID: 3})
			Expect(err).ToNot(HaveOccurred())
			Expect(enrollOutcome).To(Equal(internal.OutcomeOK))
		})
	})

	Describe("Enroll", func() {
		It("should capture the enrollment and flip the user's role to Student", func() {
			// Given: seed user 3 is an active customer
			// When
			result, outcome, err := service.Enroll(ctx, 1, 3, workshops.EnrollmentDTO{UserID: 3, Experience: "beginner"})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(result.Students).To(Equal(1))
			Expect(result.Revenue).To(Equal(int64(350_000)))
			Expect(result.EnrolledUsers).To(HaveLen(1))
			Expect(result.EnrolledUsers[0].Name).To(Equal("Dewi Lestari"))
			Expect(result.EnrolledUsers[0].Email).To(Equal("dewi.lestari@mail.com"))

			st.View(func(s *store.State) {
				Expect(s.FindUser(3).Role).To(Equal(user.RoleStudent))
			})
		})

		It("should prefer the contact override over the profile snapshot", func() {
			// When
			result, outcome, err := service.Enroll(ctx, 1, 3, workshops.EnrollmentDTO{
				UserID: 3,
				Email:  "dewi.alt@mail.com",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(result.EnrolledUsers[0].Email).To(Equal("dewi.alt@mail.com"))
			Expect(result.EnrolledUsers[0].Name).To(Equal("Dewi Lestari"))
		})

		It("should mark the workshop Full exactly at capacity", func() {
			// Given: a two-seat workshop
			_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
				ID: 20, Name: "Raku Firing", Date: "2026-11-14", MaxCapacity: 2, Price: 500_000,
			})
			Expect(err).ToNot(HaveOccurred())

			// When: both seats fill
			_, _, err = service.Enroll(ctx, 20, 2, workshops.EnrollmentDTO{UserID: 2})
			Expect(err).ToNot(HaveOccurred())
			result, outcome, err := service.Enroll(ctx, 20, 3, workshops.EnrollmentDTO{UserID: 3})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(result.Students).To(Equal(2))
			Expect(result.Status).To(Equal(workshop.StatusFull))
			Expect(result.Revenue).To(Equal(int64(1_000_000)))
		})

		Context("when the workshop is full", func() {
			It("should reject the enrollment with no state change", func() {
				// Given
				_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
					ID: 21, Name: "Single Seat", Date: "2026-11-21", MaxCapacity: 1, Price: 100_000,
				})
				Expect(err).ToNot(HaveOccurred())
				_, _, err = service.Enroll(ctx, 21, 2, workshops.EnrollmentDTO{UserID: 2})
				Expect(err).ToNot(HaveOccurred())

				// When
				_, outcome, err := service.Enroll(ctx, 21, 3, workshops.EnrollmentDTO{UserID: 3})

				// Then
				Expect(outcome).To(Equal(internal.OutcomePreconditionFailed))
				Expect(err).To(Equal(internal.ErrWorkshopFull))

				st.View(func(s *store.State) {
					w := s.FindWorkshop(21)
					Expect(w.Students).To(Equal(1))
					Expect(w.EnrolledUsers).To(HaveLen(1))
					Expect(w.Revenue).To(Equal(int64(100_000)))
					// Rejected user keeps their old role
					Expect(s.FindUser(3).Role).To(Equal(user.RoleCustomer))
				})
			})
		})

		It("should re-evaluate capacity on every call, not cache it", func() {
			// Given: one slot left
			_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
				ID: 22, Name: "Last Slot", Date: "2026-11-28", MaxCapacity: 1, Price: 80_000,
			})
			Expect(err).ToNot(HaveOccurred())

			// When: the same user enrolls twice
			_, firstOutcome, firstErr := service.Enroll(ctx, 22, 3, workshops.EnrollmentDTO{UserID: 3})
			_, secondOutcome, secondErr := service.Enroll(ctx, 22, 3, workshops.EnrollmentDTO{UserID: 3})

			// Then: one success, one rejection, no further state change
			Expect(firstErr).ToNot(HaveOccurred())
			Expect(firstOutcome).To(Equal(internal.OutcomeOK))
			Expect(secondOutcome).To(Equal(internal.OutcomePreconditionFailed))
			Expect(secondErr).To(Equal(internal.ErrWorkshopFull))

			st.View(func(s *store.State) {
				w := s.FindWorkshop(22)
				Expect(w.Students).To(Equal(1))
				Expect(w.Students).To(Equal(len(w.EnrolledUsers)))
				Expect(w.Revenue).To(Equal(int64(80_000)))
			})
		})

		Context("when the workshop is completed", func() {
			It("should reject the enrollment even with seats to spare", func() {
				// Given: capacity two, one student, then completed
				_, err := service.Create(ctx, workshops.CreateWorkshopDTO{
					ID: 23, Name: "Pit Firing", Date: "2026-12-01", MaxCapacity: 2, Price: 90_000,
				})
				Expect(err).ToNot(HaveOccurred())
				_, _, err = service.Enroll(ctx, 23, 2, workshops.EnrollmentDTO{UserID: 2})
				Expect(err).ToNot(HaveOccurred())
				_, outcome := service.Complete(ctx, 23)
				Expect(outcome).To(Equal(internal.OutcomeOK))

				// When
				_, enrollOutcome, err := service.Enroll(ctx, 23, 3, workshops.EnrollmentDTO{UserID: 3})

				// Then: Completed is terminal, no transition back to Full
				Expect(enrollOutcome).To(Equal(internal.OutcomePreconditionFailed))
				Expect(err).To(Equal(internal.ErrWorkshopCompleted))
				st.View(func(s *store.State) {
					w := s.FindWorkshop(23)
					Expect(w.Status).To(Equal(workshop.StatusCompleted))
					Expect(w.Students).To(Equal(1))
				})
			})
		})

		Context("when the workshop does not exist", func() {
			It("should return not found", func() {
				// When
				_, outcome, err := service.Enroll(ctx, 404, 3, workshops.EnrollmentDTO{UserID: 3})

				// Then
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
				Expect(err).To(Equal(internal.ErrWorkshopNotFound))
			})
		})

		Context("when the user does not exist", func() {
			It("should return not found", func() {
				// When
				_, outcome, err := service.Enroll(ctx, 1, 404, workshops.EnrollmentDTO{UserID: 404})

				// Then
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
				Expect(err).To(Equal(internal.ErrUserNotFound))
			})
		})
	})

	Describe("Complete", func() {
		It("should mark the workshop Completed and revert every student to Customer", func() {
			// Given: two enrolled users
			_, _, err := service.Enroll(ctx, 1, 2, workshops.EnrollmentDTO{UserID: 2})
			Expect(err).ToNot(HaveOccurred())
			_, _, err = service.Enroll(ctx, 1, 3, workshops.EnrollmentDTO{UserID: 3})
			Expect(err).ToNot(HaveOccurred())

			// When
			result, outcome := service.Complete(ctx, 1)

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			Expect(result.Status).To(Equal(workshop.StatusCompleted))

			st.View(func(s *store.State) {
				Expect(s.FindUser(2).Role).To(Equal(user.RoleCustomer))
				Expect(s.FindUser(3).Role).To(Equal(user.RoleCustomer))
			})
		})

		It("should revert roles even when the student is enrolled elsewhere", func() {
			// Given: user 3 enrolled in two workshops
			_, _, err := service.Enroll(ctx, 1, 3, workshops.EnrollmentDTO{UserID: 3})
			Expect(err).ToNot(HaveOccurred())
			_, _, err = service.Enroll(ctx, 2, 3, workshops.EnrollmentDTO{UserID: 3})
			Expect(err).ToNot(HaveOccurred())

			// When: only the first workshop completes
			_, outcome := service.Complete(ctx, 1)

			// Then: the revert is unconditional, no cross-workshop counting
			Expect(outcome).To(Equal(internal.OutcomeOK))
			st.View(func(s *store.State) {
				Expect(s.FindUser(3).Role).To(Equal(user.RoleCustomer))
			})
		})

		Context("when the workshop does not exist", func() {
			It("should return not found", func() {
				// When
				_, outcome := service.Complete(ctx, 404)

				// Then
				Expect(outcome).To(Equal(internal.OutcomeNotFound))
			})
		})
	})

	Describe("Delete", func() {
		It("should remove the workshop", func() {
			// When
			outcome := service.Delete(ctx, 2)

			// Then
			Expect(outcome).To(Equal(internal.OutcomeOK))
			_, getOutcome := service.Get(ctx, 2)
			Expect(getOutcome).To(Equal(internal.OutcomeNotFound))
		})
	})
})
