package workflowengine

import (
	"log/slog"

	httpadapter "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/adapters/http"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application/commands"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/application/queries"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/domain/entities"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/workflow-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	workflowUseCase := commands.WorkflowUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	workflowQueries := queries.WorkflowQueries{
		Repository: deps.Repository,
	}
	return Module{
		Handler: httpadapter.Handler{
			Workflow: workflowUseCase,
			Queries:  workflowQueries,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.FactCheck, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
