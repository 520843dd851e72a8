package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopicPrefix MQTT 主题前缀，完整主题为 <prefix>/<carousel>
const DefaultTopicPrefix = "showreel/carousel"

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 2 * time.Second
)

// MQTTPublisher 将快照发布到 MQTT broker（QoS 0，不保留）
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

// NewMQTTPublisher 连接 broker 并创建发布者
//
// 参数:
//   - broker: broker 地址（如 "tcp://localhost:1883"）
//   - clientID: 客户端 ID
//
// 返回:
//   - error: 连接失败或超时时返回错误
func NewMQTTPublisher(broker, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	log.Printf("[Telemetry] Connected to MQTT broker %s", broker)
	return NewMQTTPublisherWithClient(client, DefaultTopicPrefix), nil
}

// NewMQTTPublisherWithClient 使用已有客户端创建发布者（用于测试）
func NewMQTTPublisherWithClient(client mqtt.Client, prefix string) *MQTTPublisher {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &MQTTPublisher{client: client, prefix: prefix}
}

// Topic 返回指定轮播的主题
func (p *MQTTPublisher) Topic(carousel string) string {
	return p.prefix + "/" + carousel
}

// Publish 发布快照，不等待 broker 确认
func (p *MQTTPublisher) Publish(s Snapshot) {
	payload, err := json.Marshal(s)
	if err != nil {
		log.Printf("[Telemetry] Failed to marshal snapshot: %v", err)
		return
	}

	token := p.client.Publish(p.Topic(s.Carousel), 0, false, payload)
	go func() {
		if token.WaitTimeout(publishTimeout) && token.Error() != nil {
			log.Printf("[Telemetry] MQTT publish error: %v", token.Error())
		}
	}()
}

// Close 断开连接
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
