package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/logger"

	"github.com/IBM/sarama"
	"github.com/sony/gobreaker"
)

const defaultOrderEventTopic = "rasoi.order-events"

// KafkaPublisher 基于 sarama 同步生产者的事件发布器，经熔断器保护
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	breaker  *gobreaker.CircuitBreaker
}

// NewKafkaPublisher 连接 broker 并创建发布器
func NewKafkaPublisher(cfg config.EventsConfig) (*KafkaPublisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 5
	if clientID := strings.TrimSpace(cfg.ClientID); clientID != "" {
		saramaCfg.ClientID = clientID
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic), nil
}

// NewKafkaPublisherWithProducer 使用已有生产者创建发布器
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = defaultOrderEventTopic
	}
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		breaker:  gobreaker.NewCircuitBreaker(breakerSettings("order-events")),
	}
}

func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnw("event_publisher_breaker_state_changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
}

// PublishOrderEvent 以订单号为 key 发送，保证同一订单事件有序
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderNo),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("order_id"), Value: []byte(strconv.FormatUint(uint64(event.OrderID), 10))},
		},
	}
	_, err = p.breaker.Execute(func() (interface{}, error) {
		partition, offset, sendErr := p.producer.SendMessage(msg)
		if sendErr != nil {
			return nil, sendErr
		}
		logger.Debugw("order_event_published",
			"type", event.Type,
			"order_no", event.OrderNo,
			"partition", partition,
			"offset", offset,
		)
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("publish %s for order %s: %w", event.Type, event.OrderNo, err)
	}
	return nil
}

// Close 关闭生产者
func (p *KafkaPublisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
