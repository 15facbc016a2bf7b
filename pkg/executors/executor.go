package executors

import (
	"github.com/charmbracelet/log"

	"budgetctl/pkg/api"
	"budgetctl/pkg/config"
)

type Executor struct {
	logger *log.Logger
	config *config.Config
	api    *api.Client
}

func New(logger *log.Logger, config *config.Config, api *api.Client) *Executor {
	return &Executor{
		logger: logger,
		config: config,
		api:    api,
	}
}
