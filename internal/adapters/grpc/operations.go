package grpc

import (
	"encoding/json"
	"fmt"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	buildingCmd "github.com/andrescamacho/spaceshard-go/internal/application/building/commands"
	buildingQueries "github.com/andrescamacho/spaceshard-go/internal/application/building/queries"
	galaxyQueries "github.com/andrescamacho/spaceshard-go/internal/application/galaxy/queries"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	playerCmd "github.com/andrescamacho/spaceshard-go/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/spaceshard-go/internal/application/player/queries"
	snapshotCmd "github.com/andrescamacho/spaceshard-go/internal/application/snapshot/commands"
	transferQueries "github.com/andrescamacho/spaceshard-go/internal/application/transfer/queries"
	unitCmd "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	unitQueries "github.com/andrescamacho/spaceshard-go/internal/application/unit/queries"
)

// ServiceName is the fully qualified gRPC service name of the shard daemon
const ServiceName = "spaceshard.daemon.v1.ShardDaemon"

// MethodStatus reports daemon health; it is served without the mediator
const MethodStatus = "Status"

// operations maps RPC method names to the mediator request they carry. Each RPC takes
// and returns a google.protobuf.Struct; arguments are matched to request fields by
// name, case-insensitively.
var operations = map[string]func() mediator.Request{
	"RegisterPlayer":   func() mediator.Request { return &playerCmd.RegisterPlayerCommand{} },
	"GetPlayer":        func() mediator.Request { return &playerQueries.GetPlayerQuery{} },
	"ListPlayers":      func() mediator.Request { return &playerQueries.ListPlayersQuery{} },
	"CreateUnit":       func() mediator.Request { return &unitCmd.CreateUnitCommand{} },
	"MoveUnit":         func() mediator.Request { return &unitCmd.MoveUnitCommand{} },
	"LoadCargo":        func() mediator.Request { return &unitCmd.LoadCargoCommand{} },
	"GetUnit":          func() mediator.Request { return &unitQueries.GetUnitQuery{} },
	"GetUnitLocation":  func() mediator.Request { return &unitQueries.GetUnitLocationQuery{} },
	"ListUnits":        func() mediator.Request { return &unitQueries.ListUnitsQuery{} },
	"CreateBuilding":   func() mediator.Request { return &buildingCmd.CreateBuildingCommand{} },
	"UseBuilding":      func() mediator.Request { return &buildingCmd.UseBuildingCommand{} },
	"GetBuilding":      func() mediator.Request { return &buildingQueries.GetBuildingQuery{} },
	"ListBuildings":    func() mediator.Request { return &buildingQueries.ListBuildingsQuery{} },
	"ListSystems":      func() mediator.Request { return &galaxyQueries.ListSystemsQuery{} },
	"GetSystem":        func() mediator.Request { return &galaxyQueries.GetSystemQuery{} },
	"ListTransfers":    func() mediator.Request { return &transferQueries.ListTransfersQuery{} },
	"PersistSnapshots": func() mediator.Request { return &snapshotCmd.PersistSnapshotsCommand{} },
}

// Methods lists the RPC methods of the service, sorted
func Methods() []string {
	names := []string{MethodStatus}
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeRequest builds the mediator request of method from its arguments
func decodeRequest(method string, args *structpb.Struct) (mediator.Request, error) {
	newRequest, ok := operations[method]
	if !ok {
		return nil, fmt.Errorf("unknown method %s", method)
	}
	req := newRequest()
	if args == nil || len(args.GetFields()) == 0 {
		return req, nil
	}
	data, err := json.Marshal(args.AsMap())
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", method, err)
	}
	return req, nil
}

// ToStruct converts any JSON-marshalable value into a Struct
func ToStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("response is not an object: %w", err)
	}
	return structpb.NewStruct(fields)
}
