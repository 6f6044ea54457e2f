package graphql

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// Argument values arrive as gqlparser leaves them: literals as int64 or
// string, variables as decoded JSON.

func uuidArg(args map[string]any, name string) (uuid.UUID, error) {
	id, err := UnmarshalUUID(args[name])
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func optUUIDArg(args map[string]any, name string) (*uuid.UUID, error) {
	if v, ok := args[name]; !ok || v == nil {
		return nil, nil
	}
	id, err := uuidArg(args, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// intArg returns 0 for an absent argument, which the services read as
// "use the default".
func intArg(args map[string]any, name string) (int, error) {
	var n int64
	switch v := args[name].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return 0, domain.NewValidationError(name, "must be an integer")
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, domain.NewValidationError(name, "must be an integer")
		}
		n = i
	default:
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, domain.NewValidationError(name, "out of range")
	}
	return int(n), nil
}
