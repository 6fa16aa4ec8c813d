package kafka

import (
	"fmt"
	"strings"
	"time"

	"wallet-service/src/pkg/log"

	"github.com/IBM/sarama"
)

type Producer interface {
	Publish(topic string, key, value []byte) error
	Close() error
}

type Cfg struct {
	KafkaUrl      string
	KafkaUsername string
	KafkaPassword string
	AppName       string
}

type KafkaConfig struct {
	Brokers  []string
	Username string
	Password string
	AppName  string
}

var kafkaConfig KafkaConfig

func InitKafkaConfig(cfg Cfg) KafkaConfig {
	kafkaConfig = KafkaConfig{
		Brokers:  strings.Split(cfg.KafkaUrl, ","),
		Username: cfg.KafkaUsername,
		Password: cfg.KafkaPassword,
		AppName:  cfg.AppName,
	}
	return kafkaConfig
}

func GetConfig() KafkaConfig {
	return kafkaConfig
}

type producer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(kc KafkaConfig, logger log.Log) (Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = kc.AppName
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Return.Successes = true

	if kc.Username != "" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		config.Net.SASL.User = kc.Username
		config.Net.SASL.Password = kc.Password
	}

	syncProducer, err := sarama.NewSyncProducer(kc.Brokers, config)
	if err != nil {
		logger.Error("kafka", fmt.Sprintf("failed to create producer: %v", err), "NewProducer", "")
		return nil, err
	}

	return &producer{producer: syncProducer, log: logger}, nil
}

func (p *producer) Publish(topic string, key, value []byte) error {
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		p.log.Error("kafka", fmt.Sprintf("failed to publish message: %v", err), "Publish", topic)
		return err
	}

	p.log.Info("kafka", fmt.Sprintf("message published partition=%d offset=%d", partition, offset), "Publish", topic)
	return nil
}

func (p *producer) Close() error {
	return p.producer.Close()
}
