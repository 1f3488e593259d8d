package submissionservice

import (
	"log/slog"

	httpadapter "github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/adapters/http"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/intake/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Submissions: service,
			Logger:      deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
