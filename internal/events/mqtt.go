package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/lakshya2505/LogiCore/internal/fleet"
)

// changeEvent is the wire form of one committed write intent.
type changeEvent struct {
	Collection string      `json:"collection"`
	Op         string      `json:"op"`
	ID         string      `json:"id"`
	Doc        interface{} `json:"doc,omitempty"`
	At         time.Time   `json:"at"`
}

// Publisher pushes committed fleet changes onto an MQTT broker so
// downstream consumers (dashboards, exporters) can follow the change
// feed without polling. Publishing is a pure side effect: a broker
// failure is logged, never propagated into the operation that produced
// the change.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewPublisher connects to the broker and returns a publisher. The
// prefix defaults to "fleet" when empty.
func NewPublisher(brokerURL, clientID, topicPrefix string) (*Publisher, error) {
	if topicPrefix == "" {
		topicPrefix = "fleet"
	}
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10*time.Second) || token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{client: client, topicPrefix: topicPrefix}, nil
}

// Topic builds the topic for one change: <prefix>/<collection>/<op>.
func (p *Publisher) Topic(ch fleet.Change) string {
	return fmt.Sprintf("%s/%s/%s", p.topicPrefix, ch.Collection, ch.Op)
}

// Publish emits one event per committed change. It is shaped to be
// registered as a store listener.
func (p *Publisher) Publish(changes []fleet.Change) {
	for _, ch := range changes {
		payload, err := json.Marshal(changeEvent{
			Collection: ch.Collection,
			Op:         string(ch.Op),
			ID:         ch.ID,
			Doc:        ch.Doc,
			At:         time.Now().UTC(),
		})
		if err != nil {
			log.WithError(err).Error("failed to encode change event")
			continue
		}
		token := p.client.Publish(p.Topic(ch), 0, false, payload)
		go func(t mqtt.Token, topic string) {
			if t.Wait() && t.Error() != nil {
				log.WithError(t.Error()).WithField("topic", topic).Error("failed to publish change event")
			}
		}(token, p.Topic(ch))
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
