package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/relabs-tech/sphere_trajectory/internal/orientation"
)

// Publisher sends finished runs somewhere. The MQTT implementation is the
// production one; tests substitute a recorder.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Close()
}

type mqttPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to broker and returns a retained-message
// publisher.
func NewMQTTPublisher(broker, clientID string) (Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	log.Printf("publisher: connected to MQTT broker at %s", broker)
	return &mqttPublisher{client: client}, nil
}

func (m *mqttPublisher) Publish(topic string, payload []byte) error {
	if token := m.client.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (m *mqttPublisher) Close() {
	m.client.Disconnect(250)
}

// RadiusMessage is the summary published once per processed recording.
type RadiusMessage struct {
	RunID     string  `json:"run_id"`
	Source    string  `json:"source"`
	Radius    float64 `json:"radius"`
	Windows   int     `json:"windows"`
	Skipped   int     `json:"skipped"`
	NoiseMean float64 `json:"noise_mean"`
	NoisePeak float64 `json:"noise_peak"`
	Time      string  `json:"time"`
}

// TrajectoryPoint is one reconstructed position with the probe attitude at
// that sample.
type TrajectoryPoint struct {
	Index    int              `json:"index"`
	Position r3.Vec           `json:"position"`
	Pose     orientation.Pose `json:"pose"`
}

type TrajectoryMessage struct {
	RunID  string            `json:"run_id"`
	Source string            `json:"source"`
	Radius float64           `json:"radius"`
	Points []TrajectoryPoint `json:"points"`
}

func radiusMessage(r *Report) RadiusMessage {
	return RadiusMessage{
		RunID:     r.Run.ID,
		Source:    r.Run.Source,
		Radius:    r.Run.Radius,
		Windows:   r.Run.RadiusWindows,
		Skipped:   r.Run.SkippedWindows,
		NoiseMean: r.Run.NoiseMean,
		NoisePeak: r.Run.NoisePeak,
		Time:      r.Run.CreatedAt.Format(time.RFC3339),
	}
}

func trajectoryMessage(r *Report) TrajectoryMessage {
	points := make([]TrajectoryPoint, len(r.Result.Points))
	for i, p := range r.Result.Points {
		points[i] = TrajectoryPoint{
			Index:    i,
			Position: p,
			Pose:     orientation.PoseFromQuaternion(r.Recording.Samples[i].Orientation),
		}
	}
	return TrajectoryMessage{
		RunID:  r.Run.ID,
		Source: r.Run.Source,
		Radius: r.Run.Radius,
		Points: points,
	}
}

// publishReport sends the radius summary and the full trajectory.
func publishReport(pub Publisher, topicRadius, topicTrajectory string, r *Report) error {
	payload, err := json.Marshal(radiusMessage(r))
	if err != nil {
		return fmt.Errorf("json marshal error (radius): %w", err)
	}
	if err := pub.Publish(topicRadius, payload); err != nil {
		return fmt.Errorf("publish %s: %w", topicRadius, err)
	}

	payload, err = json.Marshal(trajectoryMessage(r))
	if err != nil {
		return fmt.Errorf("json marshal error (trajectory): %w", err)
	}
	if err := pub.Publish(topicTrajectory, payload); err != nil {
		return fmt.Errorf("publish %s: %w", topicTrajectory, err)
	}
	return nil
}
