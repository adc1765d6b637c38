package api

import (
	"github.com/ErwinJ1299/scout2-sub002/alerts"
	"github.com/ErwinJ1299/scout2-sub002/outcomes"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/ErwinJ1299/scout2-sub002/rewards"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/ErwinJ1299/scout2-sub002/store"
	"github.com/ErwinJ1299/scout2-sub002/users"
	"go.uber.org/fx"
)

type Handler struct {
	alerts   alerts.Service
	outcomes outcomes.Service
	readings readings.Service
	rewards  rewards.Service
	rules    rules.Service
	users    users.Service
}

type Params struct {
	fx.In

	Alerts   alerts.Service
	Outcomes outcomes.Service
	Readings readings.Service
	Rewards  rewards.Service
	Rules    rules.Service
	Users    users.Service
}

func NewHandler(p Params) *Handler {
	return &Handler{
		alerts:   p.Alerts,
		outcomes: p.Outcomes,
		readings: p.Readings,
		rewards:  p.Rewards,
		rules:    p.Rules,
		users:    p.Users,
	}
}

func pagination(offset *int, limit *int) store.Pagination {
	page := store.DefaultPagination()
	if offset != nil {
		page.Offset = *offset
	}
	if limit != nil {
		page.Limit = *limit
	}
	return page
}
