package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/sphere_trajectory/internal/config"
)

// consolePoints is how many points from each end of a trajectory are printed.
const consolePoints = 3

func formatRadius(payload []byte) (string, error) {
	var m RadiusMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"[RADIUS] %s  R=%.4f m  windows=%d skipped=%d  noise mean=%.4f peak=%.4f  run=%s\n",
		m.Source, m.Radius, m.Windows, m.Skipped, m.NoiseMean, m.NoisePeak, m.RunID,
	), nil
}

func formatTrajectory(payload []byte) (string, error) {
	var m TrajectoryMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[TRAJ ] %s  %d points  R=%.4f m  run=%s\n", m.Source, len(m.Points), m.Radius, m.RunID)
	for i, p := range m.Points {
		if i == consolePoints && len(m.Points) > 2*consolePoints {
			fmt.Fprintf(&b, "        ...\n")
		}
		if i >= consolePoints && i < len(m.Points)-consolePoints {
			continue
		}
		fmt.Fprintf(&b,
			"        #%-5d x=%7.4f y=%7.4f z=%7.4f  ROLL=%6.2f PITCH=%6.2f YAW=%6.2f\n",
			p.Index, p.Position.X, p.Position.Y, p.Position.Z, p.Pose.Roll, p.Pose.Pitch, p.Pose.Yaw,
		)
	}
	return b.String(), nil
}

// RunConsoleMQTT prints every published run until Ctrl+C.
func RunConsoleMQTT() error {
	cfg := config.Get()
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required for the console")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	subscriptions := []struct {
		topic  string
		format func([]byte) (string, error)
	}{
		{cfg.TopicRadius, formatRadius},
		{cfg.TopicTrajectory, formatTrajectory},
	}
	for _, sub := range subscriptions {
		token := client.Subscribe(sub.topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
			out, err := sub.format(msg.Payload())
			if err != nil {
				log.Printf("console: %s unmarshal error: %v", msg.Topic(), err)
				return
			}
			fmt.Print(out)
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("console: subscribed to %s", sub.topic)
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
