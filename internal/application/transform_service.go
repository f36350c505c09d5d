package application

import (
	"context"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
	"github.com/syatt-io/syatt-fulfillment/pkg/cloudevents"
	"github.com/syatt-io/syatt-fulfillment/pkg/kafka"
	"github.com/syatt-io/syatt-fulfillment/pkg/logging"
	"github.com/syatt-io/syatt-fulfillment/pkg/metrics"
)

// TransformApplicationService evaluates delivery options for a cart and
// produces the hide operations the checkout should apply
type TransformApplicationService struct {
	engine       *domain.Engine
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewTransformApplicationService creates a new TransformApplicationService.
// producer, eventFactory and metrics may be nil in tests.
func NewTransformApplicationService(
	classifier *domain.Classifier,
	producer *kafka.InstrumentedProducer,
	eventFactory *cloudevents.EventFactory,
	logger *logging.Logger,
	m *metrics.Metrics,
) *TransformApplicationService {
	s := &TransformApplicationService{
		producer:     producer,
		eventFactory: eventFactory,
		logger:       logger,
		metrics:      m,
	}
	s.engine = domain.NewEngine(classifier, &diagnosticObserver{logger: logger, metrics: m})
	return s
}

// EvaluateOptions runs the decision engine over the query's delivery groups
func (s *TransformApplicationService) EvaluateOptions(ctx context.Context, query EvaluateOptionsQuery) (*EvaluationResultDTO, error) {
	preference := domain.ParsePreference(query.Preference)

	decision := s.engine.Decide(preference, ToDomainGroups(query.DeliveryGroups))

	if s.metrics != nil {
		s.metrics.RecordTransformEvaluation(preference.String())
		if decision.HiddenCount() > 0 {
			s.metrics.RecordHideOperations(preference.String(), decision.HiddenCount())
		}
	}

	if len(decision.EmptiedGroups) > 0 {
		if s.metrics != nil {
			for range decision.EmptiedGroups {
				s.metrics.RecordDeliveryGroupEmptied(preference.String())
			}
		}
		s.logger.WithContext(ctx).Warn("Preference hides every option in group",
			"preference", preference.String(),
			"groups", decision.EmptiedGroups,
		)
		s.publishGroupsEmptied(ctx, preference, decision.EmptiedGroups)
	}

	s.logger.WithContext(ctx).Info("Evaluated delivery options",
		"preference", preference.String(),
		"groups", decision.GroupCount,
		"options", decision.OptionCount,
		"hidden", decision.HiddenCount(),
		"pickupLocationId", query.PickupLocationID,
	)

	s.publishEvaluated(ctx, preference, decision)

	return ToEvaluationResultDTO(decision), nil
}

// publishEvaluated emits a DeliveryOptionsEvaluated event without blocking
// the response. The transform runs inside the checkout request path, so a
// slow or unavailable broker must never delay it.
func (s *TransformApplicationService) publishEvaluated(ctx context.Context, preference domain.FulfillmentPreference, decision domain.Decision) {
	if s.producer == nil || s.eventFactory == nil {
		return
	}

	event := s.eventFactory.CreateDeliveryOptionsEvaluatedEvent(ctx,
		preference.String(),
		decision.GroupCount,
		decision.OptionCount,
		decision.HiddenCount(),
		len(decision.EmptiedGroups),
	)

	logger := s.logger.WithContext(ctx)
	s.producer.PublishEventAsync(ctx, kafka.Topics.DeliveryOptionEvents, event, func(err error) {
		if err != nil {
			logger.Warn("Failed to publish delivery options evaluated event", "error", err)
		}
	})
}

// publishGroupsEmptied emits one DeliveryGroupEmptied event per affected
// group, asynchronously for the same reason as publishEvaluated
func (s *TransformApplicationService) publishGroupsEmptied(ctx context.Context, preference domain.FulfillmentPreference, groupIDs []string) {
	if s.producer == nil || s.eventFactory == nil {
		return
	}

	logger := s.logger.WithContext(ctx)
	for _, groupID := range groupIDs {
		event := s.eventFactory.CreateDeliveryGroupEmptiedEvent(ctx, preference.String(), groupID)
		s.producer.PublishEventAsync(ctx, kafka.Topics.DeliveryOptionEvents, event, func(err error) {
			if err != nil {
				logger.Warn("Failed to publish delivery group emptied event", "error", err)
			}
		})
	}
}

// diagnosticObserver forwards classification outcomes to logs and metrics
type diagnosticObserver struct {
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func (o *diagnosticObserver) OptionClassified(option domain.DeliveryOption, category domain.OptionCategory, hidden bool) {
	if o.metrics != nil {
		o.metrics.RecordOptionClassified(string(category))
	}
	o.logger.Debug("Classified delivery option",
		"handle", option.Handle,
		"title", option.Title,
		"category", string(category),
		"hidden", hidden,
	)
}

func (o *diagnosticObserver) GroupEmptied(groupID string, optionCount int) {
	o.logger.Debug("Delivery group emptied", "groupId", groupID, "options", optionCount)
}
