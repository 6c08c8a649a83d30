package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"speedrun/utils"

	"github.com/segmentio/kafka-go"
)

func CreateRunTopic() error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}

	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer utils.Closer(conn)()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer utils.Closer(controllerConn)()

	topicConfig := kafka.TopicConfig{
		Topic:             Env().KafkaRunTopic,
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			// 30 days retention
			{
				ConfigName:  "retention.ms",
				ConfigValue: "2592000000",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

// GetRunEventWriter returns a writer for the run lifecycle topic. Messages are
// keyed by run id so every event of one run lands on the same partition.
func GetRunEventWriter() (*kafka.Writer, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	if err := CreateRunTopic(); err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return nil, err
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        Env().KafkaRunTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}, nil
}
