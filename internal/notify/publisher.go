package notify

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/avalanche-blog/internal/config"
	"github.com/avalanche-blog/pkg/metrics"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// EmailMessage is the structured payload handed to the out-of-scope
// mailer: sender identity, recipient list, subject, HTML body. Delivery,
// retries and bounces are the mailer's problem, not ours.
type EmailMessage struct {
	Sender     string        `json:"sender"`
	Recipients []string      `json:"recipients"`
	Subject    string        `json:"subject"`
	HTMLBody   template.HTML `json:"html_body"`
	Timestamp  time.Time     `json:"timestamp"`
	Source     string        `json:"source"`
}

// Dispatcher hands new-article notifications to the delivery pipeline
type Dispatcher interface {
	DispatchNewArticle(msg EmailMessage) error
	Close()
}

// NATSDispatcher publishes notification payloads to a NATS subject
// consumed by the mailer
type NATSDispatcher struct {
	conn    *nats.Conn
	subject string
	log     zerolog.Logger
}

// NewNATSDispatcher connects to NATS and returns a dispatcher
func NewNATSDispatcher(cfg *config.NATSConfig, log zerolog.Logger) (*NATSDispatcher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	return &NATSDispatcher{
		conn:    nc,
		subject: cfg.Subject,
		log:     log.With().Str("component", "notify").Logger(),
	}, nil
}

// DispatchNewArticle publishes one notification payload
func (d *NATSDispatcher) DispatchNewArticle(msg EmailMessage) error {
	msg.Timestamp = time.Now()
	msg.Source = "avalanche-blog"

	data, err := json.Marshal(msg)
	if err != nil {
		metrics.NotificationsPublished.WithLabelValues("error").Inc()
		return err
	}

	if err := d.conn.Publish(d.subject, data); err != nil {
		metrics.NotificationsPublished.WithLabelValues("error").Inc()
		return err
	}

	metrics.NotificationsPublished.WithLabelValues("ok").Inc()
	d.log.Info().Str("subject", msg.Subject).Int("recipients", len(msg.Recipients)).Msg("Published new-article notification")
	return nil
}

// Close closes the NATS connection
func (d *NATSDispatcher) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
