package tracking

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/driveops/fleet-rental/internal/models"
)

// Publisher receives every accepted fix. Consumers (map UI, downstream
// processors) subscribe out of band.
type Publisher interface {
	PublishFix(vehicleID string, fix models.GPSLocation)
}

// NopPublisher drops fixes. Used when no broker is configured.
type NopPublisher struct{}

// PublishFix does nothing.
func (NopPublisher) PublishFix(string, models.GPSLocation) {}

// MQTTPublisher streams fixes to an MQTT broker, one retained message per
// vehicle on fleet/<id>/position.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker.
func NewMQTTPublisher(broker, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect failed: %w", token.Error())
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishFix sends the fix, QoS 0. Failures are logged and dropped; the
// next tick publishes a fresher fix anyway.
func (p *MQTTPublisher) PublishFix(vehicleID string, fix models.GPSLocation) {
	payload, err := json.Marshal(fix)
	if err != nil {
		log.WithError(err).Error("Failed to marshal fix")
		return
	}
	topic := fmt.Sprintf("fleet/%s/position", vehicleID)
	token := p.client.Publish(topic, 0, true, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).WithField("topic", topic).Warn("MQTT publish failed")
		}
	}()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
