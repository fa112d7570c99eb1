package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"concerts.xdoubleu.com/apps/concerts/internal/dtos"
	wstools "github.com/xdoubleu/essentia/v2/pkg/communication/wstools"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

type WebSocketService struct {
	allowedOrigins []string
	handler        *wstools.WebSocketHandler[dtos.SubscribeMessageDto]
	jobQueue       *threading.JobQueue
	topics         map[string]*wstools.Topic
}

func NewWebSocketService(
	logger *slog.Logger,
	allowedOrigins []string,
	jobQueue *threading.JobQueue,
) *WebSocketService {
	handler := wstools.CreateWebSocketHandler[dtos.SubscribeMessageDto](
		logger,
		1,
		100, //nolint:mnd //no magic number
	)

	return &WebSocketService{
		allowedOrigins: allowedOrigins,
		handler:        &handler,
		jobQueue:       jobQueue,
		topics:         make(map[string]*wstools.Topic),
	}
}

func (service *WebSocketService) Handler() http.HandlerFunc {
	return service.handler.Handler()
}

// UpdateState is the job queue callback that pushes the progress of an
// import to every subscriber of the job's topic.
func (service *WebSocketService) UpdateState(
	id string,
	isRunning bool,
	lastRunTime *time.Time,
) {
	topic, ok := service.topics[id]
	if !ok {
		return
	}

	topic.EnqueueEvent(dtos.ProgressMessageDto{
		IsRefreshing: isRunning,
		LastRefresh:  lastRunTime,
	})
}

func (service *WebSocketService) RegisterTopics(topics []string) {
	for _, topic := range topics {
		registeredTopic, err := service.handler.AddTopic(
			topic,
			service.allowedOrigins,
			func(_ context.Context, tp *wstools.Topic) (any, error) {
				return service.fetchState(tp), nil
			},
		)
		if err != nil {
			panic(err)
		}
		service.topics[topic] = registeredTopic
	}
}

func (service *WebSocketService) fetchState(topic *wstools.Topic) dtos.ProgressMessageDto {
	isRefreshing, lastRefresh := service.jobQueue.FetchState(topic.Name)

	return dtos.ProgressMessageDto{
		IsRefreshing: isRefreshing,
		LastRefresh:  lastRefresh,
	}
}
