package correctiontracker

import (
	"log/slog"

	httpadapter "github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/adapters/http"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/adapters/memory"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application/commands"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/application/queries"
	"github.com/Post-X-Society/ans-project-sub001/contexts/editorial-core/correction-tracker/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	FactChecks ports.FactCheckProjection
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Policy     application.Policy
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	correctionUseCase := commands.CorrectionUseCase{
		Repository: deps.Repository,
		FactChecks: deps.FactChecks,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Policy:     deps.Policy,
		Logger:     deps.Logger,
	}
	correctionQueries := queries.CorrectionQueries{
		Repository: deps.Repository,
		Clock:      deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Corrections: correctionUseCase,
			Queries:     correctionQueries,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(policy application.Policy, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		FactChecks: store,
		Clock:      store,
		IDGen:      store,
		Policy:     policy,
		Logger:     logger,
	})
	module.Store = store
	return module
}
