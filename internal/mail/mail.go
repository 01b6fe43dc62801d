// Package mail implements the transactional email dispatcher. It owns the
// SMTP transport configuration, a bounded connection pool and the
// retry/backoff/timeout policy for a single delivery.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"

	"github.com/GoEvent-Admin/GoEvent-Admin/internal/config"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/retry"
	"github.com/GoEvent-Admin/GoEvent-Admin/internal/uniuri"
)

const (
	// attemptTimeout bounds a single send attempt, SMTP handshake included.
	attemptTimeout = 45 * time.Second

	// maxAttempts is the total attempt budget per delivery.
	maxAttempts = 3

	// baseDelay is the backoff unit: waits of 2s and 4s before attempts 2 and 3.
	baseDelay = 2 * time.Second

	// messageIDLen is the random part length of generated message IDs.
	messageIDLen = 24
)

var (
	sendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_send_total",
			Help: "Number of finished email deliveries, by result.",
		},
		[]string{"result"},
	)

	attemptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_send_attempts_total",
			Help: "Number of individual SMTP send attempts.",
		},
	)
)

// transport is the part of the go-mail client the dispatcher needs.
// *gomail.Client satisfies it; tests substitute a fake.
type transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Dispatcher delivers messages over SMTP with bounded retries.
type Dispatcher struct {
	cfg    config.Mail
	pool   *pool
	policy retry.Policy
}

// New creates a Dispatcher from the given transport configuration.
// Completeness is not enforced here: Send checks it per delivery so the
// service can start with mail unconfigured.
func New(cfg config.Mail) *Dispatcher {
	d := &Dispatcher{
		cfg: cfg,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			BaseDelay:   baseDelay,
			// Retries are unconditional: even auth failures, which will
			// deterministically fail again, burn the whole budget.
			IsRetryable: nil,
		},
	}

	d.pool = newPool(cfg.PoolMaxConnections(), cfg.PoolMaxMessages(), d.dial)

	return d
}

// dial creates a new SMTP client for the pool.
func (d *Dispatcher) dial() (transport, error) {
	opts := []gomail.Option{
		gomail.WithPort(d.cfg.EffectivePort()),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(d.cfg.Username),
		gomail.WithPassword(d.cfg.Password),
		gomail.WithTimeout(attemptTimeout),
	}

	if d.cfg.Secure() {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(d.cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// Send delivers one message. It returns the message ID on success. On
// exhausting the attempt budget the last error is returned wrapped in a
// *DeliveryError (errors.Is(err, ErrDeliveryFailed)).
func (d *Dispatcher) Send(ctx context.Context, msg Message) (string, error) {
	if !d.cfg.Complete() {
		log.Error().
			Bool("host_set", d.cfg.Host != "").
			Bool("username_set", d.cfg.Username != "").
			Bool("password_set", d.cfg.Password != "").
			Msg("mail configuration missing")

		return "", ErrConfigIncomplete
	}

	out, id, err := d.buildMessage(msg)
	if err != nil {
		return "", err
	}

	start := time.Now()

	log.Info().
		Str("to", msg.Recipient).
		Str("subject", msg.Subject).
		Str("host", d.cfg.Host).
		Int("port", d.cfg.EffectivePort()).
		Bool("secure", d.cfg.Secure()).
		Msg("sending email")

	attempts := 0

	err = retry.Do(ctx, d.policy, func(ctx context.Context) error {
		attempts++
		attemptTotal.Inc()

		return d.attempt(ctx, out)
	})
	if err != nil {
		sendTotal.WithLabelValues("failure").Inc()

		log.Error().
			Err(err).
			Str("to", msg.Recipient).
			Int("attempts", attempts).
			Dur("duration", time.Since(start)).
			Msg("email delivery failed")

		return "", &DeliveryError{Recipient: msg.Recipient, Attempts: attempts, Err: err}
	}

	sendTotal.WithLabelValues("success").Inc()

	log.Info().
		Str("to", msg.Recipient).
		Str("message_id", id).
		Dur("duration", time.Since(start)).
		Msg("email sent")

	return id, nil
}

// attempt performs one bounded send attempt through a pooled connection.
func (d *Dispatcher) attempt(ctx context.Context, out *gomail.Msg) error {
	conn, err := d.pool.acquire(ctx)
	if err != nil {
		return err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	err = conn.transport.DialAndSendWithContext(attemptCtx, out)
	d.pool.release(conn, err != nil)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s: %v", ErrAttemptTimeout, attemptTimeout, err)
		}

		return err
	}

	return nil
}

// buildMessage converts a Message into the wire format, deriving the
// plain-text alternative and a fresh message ID.
func (d *Dispatcher) buildMessage(msg Message) (*gomail.Msg, string, error) {
	out := gomail.NewMsg()

	if err := out.From(d.cfg.From); err != nil {
		return nil, "", fmt.Errorf("invalid sender address %q: %w", d.cfg.From, err)
	}

	if err := out.To(msg.Recipient); err != nil {
		return nil, "", fmt.Errorf("invalid recipient address %q: %w", msg.Recipient, err)
	}

	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
	out.AddAlternativeString(gomail.TypeTextPlain, msg.Text())

	id := fmt.Sprintf("%s@%s", uniuri.NewLen(messageIDLen), d.cfg.Host)
	out.SetMessageIDWithValue(id)

	return out, id, nil
}
