package handler

import (
	"context"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/IBM/sarama"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type applyCommand func(ctx context.Context, cmd model.Command) (bool, error)

type Consumer struct {
	apply    applyCommand
	validate *validator.Validate
	log      *zap.Logger
	ready    chan bool
}

func NewConsumer(apply applyCommand, log *zap.Logger) *Consumer {
	return &Consumer{
		apply:    apply,
		validate: validator.New(),
		log:      log.Named("consumer"),
		ready:    make(chan bool),
	}
}

// Ready is closed once the first session has been set up.
func (consumer *Consumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			if err := consumer.handle(session.Context(), message); err != nil {
				consumer.log.Error("consumer.handle", zap.Error(err), zap.String("value", string(message.Value)))
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// handle decodes one command and applies it. A rejected checkout or return
// is not an error.
func (consumer *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	var cmd model.Command
	if err := jsoniter.ConfigFastest.Unmarshal(message.Value, &cmd); err != nil {
		return errors.Wrap(err, "decode command")
	}
	if err := consumer.validate.Struct(cmd); err != nil {
		return errors.Wrap(err, "validate command")
	}
	applied, err := consumer.apply(ctx, cmd)
	if err != nil {
		return err
	}
	consumer.log.Debug("command applied",
		zap.String("op", string(cmd.Op)),
		zap.Int("bookId", cmd.BookID),
		zap.Bool("applied", applied),
		zap.String("topic", message.Topic),
		zap.Time("timestamp", message.Timestamp))
	return nil
}
