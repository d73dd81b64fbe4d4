// Package mqttfeed updates the sensor store from MQTT messages published by
// the device's sensor daemons.
package mqttfeed

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/rook-computer/watchface/internal/state"
)

// Topic suffixes under the configured prefix.
const (
	TopicBattery         = "battery"
	TopicSteps           = "steps"
	TopicHeartRate       = "heart-rate"
	TopicHeartRateSample = "heart-rate/sample"
	TopicPhone           = "phone"
	TopicClock24h        = "clock/24h"
)

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// SampleRecorder stores raw heart-rate history samples.
type SampleRecorder interface {
	Record(ctx context.Context, takenAt time.Time, bpm int) error
}

type Config struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// Feed applies sensor messages to a state.Store.
type Feed struct {
	Store    *state.Store
	Recorder SampleRecorder
	Logger   Logger
	Prefix   string
	Now      func() time.Time
}

// Handle applies one message. Topics outside the prefix are ignored.
func (f *Feed) Handle(ctx context.Context, topic string, payload []byte) error {
	prefix := strings.TrimSuffix(f.Prefix, "/") + "/"
	if !strings.HasPrefix(topic, prefix) {
		return nil
	}
	value := strings.TrimSpace(string(payload))
	switch strings.TrimPrefix(topic, prefix) {
	case TopicBattery:
		percent, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("battery payload %q: %w", value, err)
		}
		if math.IsNaN(percent) || math.IsInf(percent, 0) {
			return fmt.Errorf("battery payload %q is not a finite number", value)
		}
		f.Store.SetBatteryPercent(percent)
	case TopicSteps:
		steps, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("steps payload %q: %w", value, err)
		}
		f.Store.SetSteps(steps)
	case TopicHeartRate:
		if value == "" || value == "null" {
			f.Store.SetLiveHeartRate(state.NoHeartRate())
			return nil
		}
		bpm, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("heart rate payload %q: %w", value, err)
		}
		f.Store.SetLiveHeartRate(state.SomeHeartRate(bpm))
	case TopicHeartRateSample:
		if f.Recorder == nil {
			return nil
		}
		bpm, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("heart rate sample payload %q: %w", value, err)
		}
		return f.Recorder.Record(ctx, f.now(), bpm)
	case TopicPhone:
		connected, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("phone payload %q: %w", value, err)
		}
		f.Store.SetPhoneConnected(connected)
	case TopicClock24h:
		is24, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("24h payload %q: %w", value, err)
		}
		f.Store.Apply(state.SensorUpdate{Is24Hour: &is24})
	}
	return nil
}

func (f *Feed) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Subscriber connects to the broker and feeds every message under the prefix
// into Feed.
type Subscriber struct {
	Config Config
	Feed   *Feed

	client mqtt.Client
}

func (s *Subscriber) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.Broker)
	opts.SetClientID(s.Config.ClientID)
	opts.SetUsername(s.Config.Username)
	opts.SetPassword(s.Config.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.errorf("connection lost: %v", err)
	})

	topic := strings.TrimSuffix(s.Config.TopicPrefix, "/") + "/#"
	// Subscribe on every (re)connect so a broker restart does not drop the feed.
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		token := c.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
			if err := s.Feed.Handle(ctx, msg.Topic(), msg.Payload()); err != nil {
				s.errorf("message on %s: %v", msg.Topic(), err)
			}
		})
		if token.Wait() && token.Error() != nil {
			s.errorf("subscribe %s: %v", topic, token.Error())
			return
		}
		s.infof("subscribed to %s", topic)
	})

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	s.infof("connected to broker %s", s.Config.Broker)

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()
	return nil
}

func (s *Subscriber) Stop() error {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
		s.infof("disconnected")
	}
	return nil
}

func (s *Subscriber) infof(format string, args ...interface{}) {
	if s.Feed != nil && s.Feed.Logger != nil {
		s.Feed.Logger.Infof("mqtt", format, args...)
	}
}

func (s *Subscriber) errorf(format string, args ...interface{}) {
	if s.Feed != nil && s.Feed.Logger != nil {
		s.Feed.Logger.Errorf("mqtt", format, args...)
	}
}
