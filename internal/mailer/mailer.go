package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rahayucraft/studio-management/internal"
)

// Email is a single outbound transactional message.
type Email struct {
	To      string `json:"to"`
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender enqueues an email for delivery. Implementations never block on
// the actual network call.
type Sender interface {
	Send(ctx context.Context, email Email) error
	Shutdown()
}

type Worker struct {
	ID         int
	WorkerPool chan chan Email
	JobChannel chan Email
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Email, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Email),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, deliverFunc func(Email)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case email := <-w.JobChannel:
				w.Logger.Debug("worker delivering email", "worker_id", w.ID, "to", email.To)
				deliverFunc(email)
			case <-ctx.Done():
				w.Logger.Debug("mailer worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client delivers emails through an HTTP email API behind a bounded
// worker pool, so a slow or dead provider never backs up callers.
type Client struct {
	apiURL  string
	apiKey  string
	timeout time.Duration
	logger  *slog.Logger

	jobQueue   chan Email
	workerPool chan chan Email
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewClient(cfg internal.MailerConfig, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		apiURL:  cfg.APIURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		logger:  logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan Email, queueSize),
		workerPool: make(chan chan Email, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	client.startWorkerPool()

	return client
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {
		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.deliver)
		}

		c.wg.Add(1)
		go c.dispatch()

		c.logger.Info("mailer worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	defer c.wg.Done()

	for {
		select {
		case email := <-c.jobQueue:
			select {
			case jobChannel := <-c.workerPool:
				select {
				case jobChannel <- email:
				case <-c.ctx.Done():
					c.logger.Info("mailer dispatcher shutting down")
					return
				}
			case <-c.ctx.Done():
				c.logger.Info("mailer dispatcher shutting down")
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("mailer dispatcher shutting down")
			return
		}
	}
}

func (c *Client) Shutdown() {
	c.logger.Info("shutting down mailer client")
	c.cancel()
	c.wg.Wait()
	c.logger.Info("mailer client shutdown complete")
}

// Send queues the email. A full queue rejects rather than blocks.
func (c *Client) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return fmt.Errorf("email recipient is required")
	}

	select {
	case c.jobQueue <- email:
		c.logger.Info("email queued for delivery",
			"to", email.To,
			"subject", email.Subject,
			"queue_length", len(c.jobQueue))
		return nil
	default:
		c.logger.Warn("mailer queue full, dropping email",
			"to", email.To,
			"queue_capacity", cap(c.jobQueue))
		return fmt.Errorf("mailer queue full")
	}
}

func (c *Client) deliver(email Email) {
	payload := map[string]interface{}{
		"to":      email.To,
		"name":    email.Name,
		"subject": email.Subject,
		"body":    email.Body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to marshal email payload", "error", err, "to", email.To)
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.Error("failed to create email request", "error", err, "to", email.To)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpClient := &http.Client{Timeout: c.timeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Error("email delivery failed", "error", err, "to", email.To)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		c.logger.Warn("email API returned error status",
			"to", email.To,
			"status_code", resp.StatusCode)
		return
	}

	c.logger.Info("email delivered", "to", email.To, "subject", email.Subject)
}

// NoopSender logs instead of delivering. Used when the mailer is
// disabled in config and in tests.
type NoopSender struct {
	Logger *slog.Logger
}

func (n *NoopSender) Send(ctx context.Context, email Email) error {
	n.Logger.Info("mailer disabled, skipping email", "to", email.To, "subject", email.Subject)
	return nil
}

func (n *NoopSender) Shutdown() {}
