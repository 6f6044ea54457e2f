package graphql

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"

	"github.com/heartmarshall/grievance-backend/internal/domain"
)

// MarshalUUID marshals UUID to GraphQL string.
func MarshalUUID(u uuid.UUID) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		io.WriteString(w, `"`+u.String()+`"`)
	})
}

// UnmarshalUUID unmarshals GraphQL string to UUID.
func UnmarshalUUID(v any) (uuid.UUID, error) {
	switch v := v.(type) {
	case string:
		return uuid.Parse(v)
	default:
		return uuid.UUID{}, fmt.Errorf("UUID must be a string")
	}
}

// MarshalDateTime writes t in RFC 3339, UTC.
func MarshalDateTime(t time.Time) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		io.WriteString(w, `"`+t.UTC().Format(time.RFC3339)+`"`)
	})
}

// MarshalJSON writes timeline metadata as a JSON object.
func MarshalJSON(m domain.Metadata) graphql.Marshaler {
	return graphql.WriterFunc(func(w io.Writer) {
		if len(m) == 0 {
			io.WriteString(w, "{}")
			return
		}
		b, err := json.Marshal(map[string]any(m))
		if err != nil {
			io.WriteString(w, "{}")
			return
		}
		w.Write(b) //nolint:errcheck
	})
}

func enum[T ~string](v T) graphql.Marshaler {
	return graphql.MarshalString(string(v))
}

// The opt helpers return an untyped nil for absent values so the executor
// can tell a null from a value.

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return graphql.MarshalString(*s)
}

func optUUID(u *uuid.UUID) any {
	if u == nil {
		return nil
	}
	return MarshalUUID(*u)
}

func optDateTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return MarshalDateTime(*t)
}

func optEnum[T ~string](v *T) any {
	if v == nil {
		return nil
	}
	return enum(*v)
}
