package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method string
	args   map[string]interface{}
}

type fakeDaemon struct {
	responses map[string]map[string]interface{}
	err       error
	calls     []recordedCall
	dialedAs  []string
}

func (f *fakeDaemon) Call(ctx context.Context, method string, args map[string]interface{}) (map[string]interface{}, error) {
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[method], nil
}

func (f *fakeDaemon) Close() error { return nil }

// withFakeDaemon swaps the dialer for the duration of the test
func withFakeDaemon(t *testing.T, responses map[string]map[string]interface{}) *fakeDaemon {
	t.Helper()
	fake := &fakeDaemon{responses: responses}
	previous := dialDaemon
	dialDaemon = func(address, user, password string) (daemonCaller, error) {
		fake.dialedAs = append(fake.dialedAs, address+"|"+user)
		return fake, nil
	}
	t.Cleanup(func() { dialDaemon = previous })
	return fake
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decode turns a JSON literal into the generic shape the daemon client returns
func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestPlayerRegister_SendsIDAndPseudo(t *testing.T) {
	fake := withFakeDaemon(t, map[string]map[string]interface{}{
		"RegisterPlayer": decode(t, `{"Created": true, "Player": {"id": "alice", "pseudo": "Alice", "resourcesQuantity": {"iron": 100}}}`),
	})

	out, err := run(t, "player", "register", "alice", "--pseudo", "Alice", "--daemon", "localhost:1", "--user", "admin")

	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "RegisterPlayer", fake.calls[0].method)
	assert.Equal(t, "alice", fake.calls[0].args["playerId"])
	assert.Equal(t, "Alice", fake.calls[0].args["pseudo"])
	assert.Equal(t, []string{"localhost:1|admin"}, fake.dialedAs)
	assert.Contains(t, out, "Player registered successfully")
	assert.Contains(t, out, "iron=100")
}

func TestUnitList_UsesPlayerFlag(t *testing.T) {
	fake := withFakeDaemon(t, map[string]map[string]interface{}{
		"ListUnits": decode(t, `{"Units": [{"id": "u-1", "type": "scout", "system": "Alpha", "health": 100}]}`),
	})

	out, err := run(t, "unit", "list", "-p", "alice", "--daemon", "localhost:1")

	require.NoError(t, err)
	assert.Equal(t, "alice", fake.calls[0].args["playerId"])
	assert.Contains(t, out, "u-1")
	assert.Contains(t, out, "scout")
	assert.Contains(t, out, "Alpha")
}

func TestUnitMove_PrintsRedirect(t *testing.T) {
	fake := withFakeDaemon(t, map[string]map[string]interface{}{
		"MoveUnit": decode(t, `{"Redirect": "http://west.test/users/alice/units/u-1"}`),
	})

	out, err := run(t, "unit", "move", "u-1", "--shard", "west", "-p", "alice", "--daemon", "localhost:1")

	require.NoError(t, err)
	assert.Equal(t, "west", fake.calls[0].args["destinationShard"])
	assert.Contains(t, out, "Unit transferred to west")
	assert.Contains(t, out, "http://west.test/users/alice/units/u-1")
}

func TestJSONOutput_PrintsRawResponse(t *testing.T) {
	withFakeDaemon(t, map[string]map[string]interface{}{
		"ListSystems": decode(t, `{"systems": [{"name": "Alpha", "planets": [{"name": "Alpha I", "size": 3}]}], "wormholes": []}`),
	})

	out, err := run(t, "system", "list", "-o", "json", "--daemon", "localhost:1")

	require.NoError(t, err)
	resp := decode(t, out)
	assert.Len(t, resp["systems"], 1)
}

func TestSystemList_PrintsPlanetsAndWormholes(t *testing.T) {
	withFakeDaemon(t, map[string]map[string]interface{}{
		"ListSystems": decode(t, `{
			"systems": [{"name": "Alpha", "planets": [{"name": "Alpha I", "size": 3}]}],
			"wormholes": [{"name": "west", "system": "Alpha", "baseUri": "http://west.test"}]
		}`),
	})

	out, err := run(t, "system", "list", "--daemon", "localhost:1")

	require.NoError(t, err)
	assert.Contains(t, out, "Alpha I (size 3)")
	assert.Contains(t, out, "Alpha -> west (http://west.test)")
}

func TestTransferList_ShowsFailures(t *testing.T) {
	withFakeDaemon(t, map[string]map[string]interface{}{
		"ListTransfers": decode(t, `{"Transfers": [
			{"UnitID": "u-1", "UnitType": "cargo", "Destination": "west", "Succeeded": true, "At": "2024-01-01T00:00:00Z"},
			{"UnitID": "u-2", "UnitType": "scout", "Destination": "east", "Succeeded": false, "Error": "unreachable", "At": "2024-01-01T00:01:00Z"}
		]}`),
	})

	out, err := run(t, "transfer", "list", "-p", "alice", "--daemon", "localhost:1")

	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "failed: unreachable")
}

func TestCall_WrapsDaemonErrors(t *testing.T) {
	fake := withFakeDaemon(t, nil)
	fake.err = errors.New("not_found: player bob not found")

	_, err := run(t, "player", "info", "bob", "--daemon", "localhost:1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GetPlayer failed")
	assert.Contains(t, err.Error(), "player bob not found")
}

func TestPlayerResources_RejectsMalformedQuantities(t *testing.T) {
	fake := withFakeDaemon(t, nil)

	_, err := run(t, "player", "resources", "alice", "iron", "--daemon", "localhost:1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected resource=amount")
	assert.Empty(t, fake.calls)
}

func TestParseQuantities(t *testing.T) {
	got, err := parseQuantities([]string{"Iron=10", "gold=0"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"iron": 10, "gold": 0}, got)

	_, err = parseQuantities([]string{"iron=lots"})
	assert.Error(t, err)
}

func TestWorldGenerate_WritesValidSpecification(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sector.yaml")

	stdout, err := run(t, "world", "generate", "--seed", "cli-test", "--systems", "4", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 4 systems")

	_, err = os.Stat(out)
	require.NoError(t, err)

	stdout, err = run(t, "world", "check", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid: 4 systems")
}

func TestWorldGenerate_IsDeterministic(t *testing.T) {
	first, err := run(t, "world", "generate", "--seed", "same", "--systems", "3")
	require.NoError(t, err)
	second, err := run(t, "world", "generate", "--seed", "same", "--systems", "3")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://shard:****@db:5432/shard", maskPassword("postgres://shard:secret@db:5432/shard"))
	assert.Equal(t, "postgres://db:5432/shard", maskPassword("postgres://db:5432/shard"))
}
