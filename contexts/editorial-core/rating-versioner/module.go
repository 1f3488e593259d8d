package ratingversioner

import (
	"log/slog"

	httpadapter "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/adapters/http"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/rating-versioner/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository          ports.Repository
	Workflow            ports.WorkflowReader
	Clock               ports.Clock
	IDGen               ports.IDGenerator
	Scale               []string
	MinJustificationLen int
	Logger              *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:                deps.Repository,
		Workflow:            deps.Workflow,
		Clock:               deps.Clock,
		IDGen:               deps.IDGen,
		Scale:               deps.Scale,
		MinJustificationLen: deps.MinJustificationLen,
		Logger:              deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ratings: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(scale []string, minJustificationLen int, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:          store,
		Workflow:            store,
		Clock:               store,
		IDGen:               store,
		Scale:               scale,
		MinJustificationLen: minJustificationLen,
		Logger:              logger,
	})
	module.Store = store
	return module
}
