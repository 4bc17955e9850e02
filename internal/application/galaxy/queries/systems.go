package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
)

// ListSystemsQuery lists the systems of the sector
type ListSystemsQuery struct{}

// ListSystemsResponse carries the systems and configured wormholes
type ListSystemsResponse struct {
	Systems   []*common.SystemView `json:"systems"`
	Wormholes []*WormholeView      `json:"wormholes"`
}

// WormholeView describes a wormhole without its credentials
type WormholeView struct {
	Name    string `json:"name"`
	System  string `json:"system"`
	BaseURI string `json:"baseUri"`
}

// ListSystemsHandler handles the ListSystems query
type ListSystemsHandler struct {
	sector *galaxy.Sector
}

// NewListSystemsHandler creates a new ListSystemsHandler
func NewListSystemsHandler(sector *galaxy.Sector) *ListSystemsHandler {
	return &ListSystemsHandler{sector: sector}
}

// Handle executes the ListSystems query
func (h *ListSystemsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListSystemsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSystemsQuery")
	}

	resp := &ListSystemsResponse{}
	for _, s := range h.sector.Systems() {
		resp.Systems = append(resp.Systems, common.NewSystemView(s))
	}
	for _, w := range h.sector.Wormholes() {
		resp.Wormholes = append(resp.Wormholes, &WormholeView{Name: w.Name, System: w.System, BaseURI: w.BaseURI})
	}
	return resp, nil
}

// GetSystemQuery fetches one system with the ids of the units present
type GetSystemQuery struct {
	Name string
}

// GetSystemResponse carries the system
type GetSystemResponse struct {
	System    *common.SystemView `json:"system"`
	Occupants []string           `json:"occupants"`
}

// GetSystemHandler handles the GetSystem query
type GetSystemHandler struct {
	sector *galaxy.Sector
}

// NewGetSystemHandler creates a new GetSystemHandler
func NewGetSystemHandler(sector *galaxy.Sector) *GetSystemHandler {
	return &GetSystemHandler{sector: sector}
}

// Handle executes the GetSystem query
func (h *GetSystemHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSystemQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSystemQuery")
	}

	s, err := h.sector.System(query.Name)
	if err != nil {
		return nil, err
	}
	resp := &GetSystemResponse{System: common.NewSystemView(s), Occupants: []string{}}
	for _, o := range s.Occupants() {
		resp.Occupants = append(resp.Occupants, o.ID())
	}
	return resp, nil
}
