package mailer_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/events"
	"github.com/rahayucraft/studio-management/internal/mailer"
)

func TestMailer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mailer Suite")
}

// mockSender captures queued emails instead of delivering them.
type mockSender struct {
	sent    []mailer.Email
	sendErr error
}

func (m *mockSender) Send(_ context.Context, email mailer.Email) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *mockSender) Shutdown() {}

var _ = Describe("ComposeReturnResponse", func() {
	Context("when the return was approved", func() {
		It("should render the approval email", func() {
			// Given
			ev := events.NewReturnRespondedEvent(
				1, "ORD-2026-0001", "Dewi Lestari", "dewi.lestari@mail.com",
				true, "Damage confirmed", "Refund within 5 days", "")

			// When
			email := mailer.ComposeReturnResponse(ev)

			// Then
			Expect(email.To).To(Equal("dewi.lestari@mail.com"))
			Expect(email.Subject).To(ContainSubstring("approved"))
			Expect(email.Subject).To(ContainSubstring("ORD-2026-0001"))
			Expect(email.Body).To(ContainSubstring("Hello Dewi Lestari,"))
			Expect(email.Body).To(ContainSubstring("Reason: Damage confirmed"))
			Expect(email.Body).To(ContainSubstring("Refund within 5 days"))
			Expect(email.Body).To(ContainSubstring("Rahayu Craft Studio"))
		})
	})

	Context("when the return was rejected", func() {
		It("should render the rejection email with the alternative", func() {
			// Given
			ev := events.NewReturnRespondedEvent(
				1, "ORD-2026-0001", "Dewi Lestari", "dewi.lestari@mail.com",
				false, "Outside the return window", "", "Store credit offered")

			// When
			email := mailer.ComposeReturnResponse(ev)

			// Then
			Expect(email.Subject).To(ContainSubstring("Update on your return"))
			Expect(email.Body).To(ContainSubstring("could not approve"))
			Expect(email.Body).To(ContainSubstring("Alternative offered: Store credit offered"))
		})
	})

	Context("when the recipient name is unknown", func() {
		It("should fall back to a plain greeting", func() {
			// Given
			ev := events.NewReturnRespondedEvent(
				1, "ORD-2026-0001", "", "dewi.lestari@mail.com",
				true, "ok", "", "")

			// When
			email := mailer.ComposeReturnResponse(ev)

			// Then
			Expect(email.Body).To(ContainSubstring("Hello,"))
		})
	})
})

var _ = Describe("EventHandler", func() {
	var (
		ctx    context.Context
		sender *mockSender
		logger *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		sender = &mockSender{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	Describe("HandleReturnResponded", func() {
		It("should queue the decision email", func() {
			// Given
			handler := mailer.NewEventHandler(sender, logger)
			ev := events.NewReturnRespondedEvent(
				1, "ORD-2026-0001", "Dewi Lestari", "dewi.lestari@mail.com",
				true, "Damage confirmed", "", "")

			// When
			err := handler.HandleReturnResponded(ctx, ev)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(sender.sent).To(HaveLen(1))
			Expect(sender.sent[0].To).To(Equal("dewi.lestari@mail.com"))
		})

		Context("when the sender fails", func() {
			It("should surface the failure", func() {
				// Given
				sender.sendErr = errors.New("queue full")
				handler := mailer.NewEventHandler(sender, logger)
				ev := events.NewReturnRespondedEvent(
					1, "ORD-2026-0001", "Dewi", "dewi@mail.com", true, "ok", "", "")

				// When
				err := handler.HandleReturnResponded(ctx, ev)

				// Then
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("RegisterEventHandlers", func() {
		It("should dispatch published return decisions to the sender", func() {
			// Given
			bus := events.NewEventBus(logger)
			mailer.NewEventHandler(sender, logger).RegisterEventHandlers(bus)
			ev := events.NewReturnRespondedEvent(
				1, "ORD-2026-0001", "Dewi", "dewi@mail.com", true, "ok", "", "")

			// When
			err := bus.PublishSync(ctx, ev)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(sender.sent).To(HaveLen(1))
		})
	})
})

var _ = Describe("Client", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	It("should deliver queued emails through the HTTP API with the API key", func() {
		// Given
		type payload struct {
			To      string `json:"to"`
			Subject string `json:"subject"`
		}
		received := make(chan payload, 1)
		auth := make(chan string, 1)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var p payload
			Expect(json.NewDecoder(r.Body).Decode(&p)).To(Succeed())
			auth <- r.Header.Get("Authorization")
			received <- p
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := mailer.NewClient(internal.MailerConfig{
			APIURL:     server.URL,
			APIKey:     "test-key",
			Timeout:    2 * time.Second,
			MaxWorkers: 1,
			QueueSize:  4,
		}, logger)
		defer client.Shutdown()

		// When
		err := client.Send(context.Background(), mailer.Email{
			To:      "dewi@mail.com",
			Subject: "Your return was approved",
			Body:    "body",
		})

		// Then
		Expect(err).ToNot(HaveOccurred())
		Eventually(received, 3*time.Second).Should(Receive(WithTransform(func(p payload) string {
			return p.To
		}, Equal("dewi@mail.com"))))
		Eventually(auth).Should(Receive(Equal("Bearer test-key")))
	})

	Context("when the recipient is missing", func() {
		It("should reject the email without queueing", func() {
			// Given
			client := mailer.NewClient(internal.MailerConfig{APIURL: "http://localhost:0"}, logger)
			defer client.Shutdown()

			// When
			err := client.Send(context.Background(), mailer.Email{Subject: "no recipient"})

			// Then
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("NoopSender", func() {
	It("should accept emails without delivering", func() {
		// Given
		sender := &mailer.NoopSender{Logger: slog.New(slog.NewTextHandler(os.Stdout, nil))}

		// When
		err := sender.Send(context.Background(), mailer.Email{To: "dewi@mail.com"})

		// Then
		Expect(err).ToNot(HaveOccurred())
	})
})
