package gateway

import (
	"errors"
	"net/http"

	"github.com/andrescamacho/spaceshard-go/internal/adapters/api"
	buildingQueries "github.com/andrescamacho/spaceshard-go/internal/application/building/queries"
	galaxyQueries "github.com/andrescamacho/spaceshard-go/internal/application/galaxy/queries"
	playerCmd "github.com/andrescamacho/spaceshard-go/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/spaceshard-go/internal/application/player/queries"
	unitCmd "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	unitQueries "github.com/andrescamacho/spaceshard-go/internal/application/unit/queries"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &playerQueries.ListPlayersQuery{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*playerQueries.ListPlayersResponse).Players)
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &playerQueries.GetPlayerQuery{PlayerID: r.PathValue("playerId")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*playerQueries.GetPlayerResponse).Player)
}

// putPlayer registers a player, or overwrites its resources for elevated callers
func (s *Server) putPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerId")
	var body api.PlayerBody
	if err := decode(s.schemas.player, r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.ID != "" && body.ID != playerID {
		s.writeError(w, r, shared.NewInvalidRequestError("player id in body does not match the path"))
		return
	}

	resp, err := s.mediator.Send(r.Context(), &playerCmd.RegisterPlayerCommand{
		PlayerID:  playerID,
		Pseudo:    body.Pseudo,
		CreatedAt: body.DateOfCreation,
		Resources: body.ResourcesQuantity,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result := resp.(*playerCmd.RegisterPlayerResponse)
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result.Player)
}

func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &unitQueries.ListUnitsQuery{PlayerID: r.PathValue("playerId")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*unitQueries.ListUnitsResponse).Units)
}

func (s *Server) getUnit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &unitQueries.GetUnitQuery{
		PlayerID: r.PathValue("playerId"),
		UnitID:   r.PathValue("unitId"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*unitQueries.GetUnitResponse).Unit)
}

// putUnit creates the unit when it does not exist yet, otherwise moves it. A move
// through a wormhole answers 303 with the unit's address on the sibling shard.
func (s *Server) putUnit(w http.ResponseWriter, r *http.Request) {
	playerID, unitID := r.PathValue("playerId"), r.PathValue("unitId")
	var body api.UnitBody
	if err := decode(s.schemas.unit, r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.ID != "" && body.ID != unitID {
		s.writeError(w, r, shared.NewInvalidRequestError("unit id in body does not match the path"))
		return
	}

	_, err := s.mediator.Send(r.Context(), &unitQueries.GetUnitQuery{PlayerID: playerID, UnitID: unitID})
	switch {
	case errors.Is(err, shared.ErrNotFound):
		s.createUnit(w, r, playerID, unitID, body)
	case err != nil:
		s.writeError(w, r, err)
	default:
		s.moveUnit(w, r, playerID, unitID, body)
	}
}

func (s *Server) createUnit(w http.ResponseWriter, r *http.Request, playerID, unitID string, body api.UnitBody) {
	resp, err := s.mediator.Send(r.Context(), &unitCmd.CreateUnitCommand{
		PlayerID:  playerID,
		UnitID:    unitID,
		Type:      body.Type,
		System:    body.System,
		Planet:    body.Planet,
		Health:    body.Health,
		Resources: body.ResourcesQuantity,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.(*unitCmd.CreateUnitResponse).Unit)
}

func (s *Server) moveUnit(w http.ResponseWriter, r *http.Request, playerID, unitID string, body api.UnitBody) {
	resp, err := s.mediator.Send(r.Context(), &unitCmd.MoveUnitCommand{
		PlayerID:         playerID,
		UnitID:           unitID,
		System:           body.System,
		Planet:           body.Planet,
		DestinationShard: body.DestinationShard,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result := resp.(*unitCmd.MoveUnitResponse)
	if result.Redirect != "" {
		w.Header().Set("Location", result.Redirect)
		writeJSON(w, http.StatusSeeOther, map[string]string{"location": result.Redirect})
		return
	}
	writeJSON(w, http.StatusOK, result.Unit)
}

func (s *Server) getUnitLocation(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &unitQueries.GetUnitLocationQuery{
		PlayerID: r.PathValue("playerId"),
		UnitID:   r.PathValue("unitId"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*unitQueries.GetUnitLocationResponse).Location)
}

func (s *Server) listBuildings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &buildingQueries.ListBuildingsQuery{PlayerID: r.PathValue("playerId")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*buildingQueries.ListBuildingsResponse).Buildings)
}

func (s *Server) getBuilding(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &buildingQueries.GetBuildingQuery{
		PlayerID:   r.PathValue("playerId"),
		BuildingID: r.PathValue("buildingId"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.(*buildingQueries.GetBuildingResponse).Building)
}

func (s *Server) listSystems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &galaxyQueries.ListSystemsQuery{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getSystem(w http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &galaxyQueries.GetSystemQuery{Name: r.PathValue("name")})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
