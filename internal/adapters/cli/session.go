package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/adapters/grpc"
	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
)

const callTimeout = 30 * time.Second

// daemonCaller is the part of the gRPC daemon client the commands use
type daemonCaller interface {
	Call(ctx context.Context, method string, args map[string]interface{}) (map[string]interface{}, error)
	Close() error
}

// dialDaemon connects to the daemon; tests replace it
var dialDaemon = func(address, user, password string) (daemonCaller, error) {
	return grpc.NewDaemonClient(address, user, password)
}

// call sends one RPC to the daemon and returns the decoded response
func call(method string, args map[string]interface{}) (map[string]interface{}, error) {
	cfg := config.LoadConfigOrDefault(configPath)

	address := daemonAddress
	if address == "" {
		if handler, err := config.NewUserConfigHandler(); err == nil {
			if userCfg, err := handler.Load(); err == nil {
				address = userCfg.DaemonAddress
			}
		}
	}
	if address == "" {
		address = cfg.Daemon.Address
	}
	user, pass := username, password
	if user == "" {
		user, pass = cfg.Auth.AdminUser, cfg.Auth.AdminPassword
	}

	client, err := dialDaemon(address, user, pass)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	resp, err := client.Call(ctx, method, args)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return resp, nil
}

// resolvePlayer returns the player from the flag, or the user config default
func resolvePlayer() (string, error) {
	if playerFlag != "" {
		return playerFlag, nil
	}
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no player specified and failed to load user config: %w", err)
	}
	userCfg, err := handler.Load()
	if err != nil {
		return "", fmt.Errorf("no player specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultPlayerID == "" {
		return "", fmt.Errorf("no player specified: use --player, or set a default with 'shardctl config set-player'")
	}
	return userCfg.DefaultPlayerID, nil
}

// parseQuantities parses resource=amount arguments
func parseQuantities(args []string) (map[string]int, error) {
	out := make(map[string]int, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected resource=amount, got %q", arg)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %s: %w", name, err)
		}
		out[strings.ToLower(name)] = n
	}
	return out, nil
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func str(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func object(m map[string]interface{}, key string) map[string]interface{} {
	obj, _ := m[key].(map[string]interface{})
	return obj
}

func objects(m map[string]interface{}, key string) []map[string]interface{} {
	raw, _ := m[key].([]interface{})
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

// formatQuantities renders a quantity map as "carbon=20 iron=10", sorted by name
func formatQuantities(m map[string]interface{}) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+str(m, k))
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
