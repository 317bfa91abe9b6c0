package records

import (
	"context"
	"fmt"

	"claimsview/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads collections straight from the claims database, one
// table per resource.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource wraps an open pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Fetch selects every row of the schema's table as a record.
func (p *PostgresSource) Fetch(ctx context.Context, schema query.Schema) ([]query.Record, error) {
	schema = schema.WithDefaults()
	table := pgx.Identifier{schema.Table}.Sanitize()

	rows, err := p.pool.Query(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", schema.Table, err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", schema.Table, err)
	}

	result := make([]query.Record, 0, len(maps))
	for _, m := range maps {
		result = append(result, normalizeRow(m))
	}
	return result, nil
}

// normalizeRow converts driver types into the plain values records carry.
func normalizeRow(row map[string]any) query.Record {
	out := make(query.Record, len(row))
	for k, v := range row {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(val).String()
	case pgtype.UUID:
		if !val.Valid {
			return nil
		}
		return uuid.UUID(val.Bytes).String()
	case pgtype.Text:
		if !val.Valid {
			return nil
		}
		return val.String
	case pgtype.Date:
		if !val.Valid {
			return nil
		}
		return val.Time
	case pgtype.Timestamp:
		if !val.Valid {
			return nil
		}
		return val.Time
	case map[string]any:
		return normalizeRow(val)
	default:
		return v
	}
}
