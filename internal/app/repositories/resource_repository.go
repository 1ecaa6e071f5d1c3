package repositories

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/acemedformatics/acemed/internal/db"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/dberrors"
	"github.com/acemedformatics/acemed/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// Schema describes how an entity maps onto its table
type Schema[T any] struct {
	Table string
	// DefaultOrder is used when a query does not name an order, e.g. "created_at DESC"
	DefaultOrder []string
	// Values returns the writable columns of a row. id and created_at are never written.
	Values func(row *T) map[string]interface{}
}

// Query is the eq/order/limit surface the site uses against a table
type Query struct {
	Filters map[string]interface{}
	OrderBy []string
	Limit   uint64
	Offset  uint64
}

// ResourceRepository is the table access shared by every entity
type ResourceRepository[T any] struct {
	db      db.DBTX
	sb      squirrel.StatementBuilderType
	schema  Schema[T]
	columns []string
}

// NewResourceRepository creates a repository for schema over conn
func NewResourceRepository[T any](conn db.DBTX, schema Schema[T]) *ResourceRepository[T] {
	return &ResourceRepository[T]{
		db:      conn,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schema:  schema,
		columns: columnsOf[T](),
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *ResourceRepository[T]) WithTx(tx db.DBTX) *ResourceRepository[T] {
	clone := *r
	clone.db = tx
	return &clone
}

// Table returns the table name
func (r *ResourceRepository[T]) Table() string {
	return r.schema.Table
}

// Columns returns the selected columns in struct order
func (r *ResourceRepository[T]) Columns() []string {
	return r.columns
}

// columnsOf lists the db tags of T's fields
func columnsOf[T any]() []string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, strings.Split(tag, ",")[0])
	}
	return cols
}

func (r *ResourceRepository[T]) selectBuilder(q Query) squirrel.SelectBuilder {
	b := r.sb.Select(r.columns...).From(r.schema.Table)
	if len(q.Filters) > 0 {
		b = b.Where(squirrel.Eq(q.Filters))
	}

	order := q.OrderBy
	if len(order) == 0 {
		order = r.schema.DefaultOrder
	}
	if len(order) > 0 {
		b = b.OrderBy(order...)
	}
	if q.Limit > 0 {
		b = b.Limit(q.Limit)
	}
	if q.Offset > 0 {
		b = b.Offset(q.Offset)
	}
	return b
}

// List returns the rows matching q
func (r *ResourceRepository[T]) List(ctx context.Context, q Query) ([]*T, error) {
	sql, args, err := r.selectBuilder(q).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Msg("Error building list SQL")
		return nil, fmt.Errorf("failed to build list query for %s: %w", r.schema.Table, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Msg("Error executing list query")
		return nil, fmt.Errorf("error querying %s: %w", r.schema.Table, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Msg("Error scanning rows")
		return nil, fmt.Errorf("error scanning %s: %w", r.schema.Table, err)
	}
	return items, nil
}

// Count returns the number of rows matching filters
func (r *ResourceRepository[T]) Count(ctx context.Context, filters map[string]interface{}) (int64, error) {
	b := r.sb.Select("COUNT(*)").From(r.schema.Table)
	if len(filters) > 0 {
		b = b.Where(squirrel.Eq(filters))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query for %s: %w", r.schema.Table, err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", r.schema.Table, err)
	}
	return total, nil
}

// Get returns the row with id
func (r *ResourceRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	return r.FindBy(ctx, "id", id)
}

// FindBy returns the first row, in default order, whose column equals value
func (r *ResourceRepository[T]) FindBy(ctx context.Context, column string, value interface{}) (*T, error) {
	sql, args, err := r.selectBuilder(Query{
		Filters: map[string]interface{}{column: value},
		Limit:   1,
	}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find query for %s: %w", r.schema.Table, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Str("column", column).Msg("Error executing find query")
		return nil, fmt.Errorf("error querying %s: %w", r.schema.Table, err)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, r.notFound(err, column, value)
	}
	return item, nil
}

// Create inserts row and returns it as stored
func (r *ResourceRepository[T]) Create(ctx context.Context, row *T) (*T, error) {
	values := r.schema.Values(row)
	sql, args, err := r.sb.Insert(r.schema.Table).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(r.columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert for %s: %w", r.schema.Table, err)
	}

	return r.returning(ctx, sql, args, "insert")
}

// Update replaces the writable columns of row id
func (r *ResourceRepository[T]) Update(ctx context.Context, id int64, row *T) (*T, error) {
	return r.Patch(ctx, id, r.schema.Values(row))
}

// Patch sets only the given columns of row id
func (r *ResourceRepository[T]) Patch(ctx context.Context, id int64, columns map[string]interface{}) (*T, error) {
	if len(columns) == 0 {
		return r.Get(ctx, id)
	}

	sql, args, err := r.sb.Update(r.schema.Table).
		SetMap(columns).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(r.columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update for %s: %w", r.schema.Table, err)
	}

	item, err := r.returning(ctx, sql, args, "update")
	if err != nil {
		return nil, r.notFound(err, "id", id)
	}
	return item, nil
}

// Delete removes row id
func (r *ResourceRepository[T]) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(r.schema.Table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete for %s: %w", r.schema.Table, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Int64("id", id).Msg("Error deleting row")
		return dberrors.Classify(fmt.Errorf("error deleting from %s: %w", r.schema.Table, err), r.schema.Table)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", r.schema.Table, id))
	}
	return nil
}

func (r *ResourceRepository[T]) returning(ctx context.Context, sql string, args []interface{}, op string) (*T, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("table", r.schema.Table).Str("op", op).Msg("Error executing write")
		return nil, dberrors.Classify(fmt.Errorf("error during %s on %s: %w", op, r.schema.Table, err), r.schema.Table)
	}

	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		logger.Error().Err(err).Str("table", r.schema.Table).Str("op", op).Msg("Error executing write")
		return nil, dberrors.Classify(fmt.Errorf("error during %s on %s: %w", op, r.schema.Table, err), r.schema.Table)
	}
	return item, nil
}

func (r *ResourceRepository[T]) notFound(err error, column string, value interface{}) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s with %s %v not found", r.schema.Table, column, value))
	}
	return err
}
