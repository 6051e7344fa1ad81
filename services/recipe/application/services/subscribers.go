package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/recipelog/pkg/logger"
	"github.com/ghuser/recipelog/services/recipe/domain/events"
)

// Subscriber is the slice of the event bus RegisterSubscribers needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// RegisterSubscribers attaches the audit log to every recipe topic. Handler
// failures are logged until ctx is done.
func RegisterSubscribers(ctx context.Context, bus Subscriber, log logger.Logger) error {
	for _, topic := range []string{events.TopicRecipeCreated, events.TopicRecipeUpdated, events.TopicRecipeDeleted} {
		errs, err := bus.Subscribe(ctx, topic, auditHandler(topic, log))
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func(topic string) {
			for err := range errs {
				log.Error("recipe event handler failed", "topic", topic, "error", err)
			}
		}(topic)
	}
	return nil
}

func auditHandler(topic string, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var ev events.RecipeChangedEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", topic, err)
		}
		args := []any{
			"topic", topic,
			"event_id", ev.EventID,
			"recipe_id", ev.RecipeID,
			"dish_name", ev.DishName,
		}
		if !ev.Confirmed {
			log.WarnContext(ctx, "recipe change not confirmed by store", args...)
			return nil
		}
		log.InfoContext(ctx, "recipe changed", args...)
		return nil
	}
}
