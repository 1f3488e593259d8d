package peerreview

import (
	"log/slog"

	httpadapter "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/adapters/http"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/application/workers"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/peer-review/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Service  application.Service
	Consumer workers.WorkflowStateConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Repository   ports.Repository
	Reviewers    ports.ReviewerDirectory
	Subscriber   ports.EventSubscriber
	Dedup        ports.EventDedupStore
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	MinReviewers int
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:         deps.Repository,
		Reviewers:    deps.Reviewers,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		MinReviewers: deps.MinReviewers,
		Logger:       deps.Logger,
	}
	consumer := workers.WorkflowStateConsumer{
		Subscriber: deps.Subscriber,
		Dedup:      deps.Dedup,
		Reviews:    service,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Reviews: service,
			Logger:  deps.Logger,
		},
		Service:  service,
		Consumer: consumer,
	}
}

func NewInMemoryModule(minReviewers int, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:   store,
		Reviewers:    store,
		Dedup:        store,
		Clock:        store,
		IDGen:        store,
		MinReviewers: minReviewers,
		Logger:       logger,
	})
	module.Store = store
	return module
}
