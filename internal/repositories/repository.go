package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"kaawa-maintenance/pkg/types"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// listSpec - белые списки полей для поиска, фильтрации и сортировки (защита от SQL Injection).
type listSpec struct {
	from         string
	columns      string
	joins        []string
	searchFields []string
	filters      map[string]string
	boolFilters  map[string]bool
	sorts        map[string]string
	defaultOrder string
}

func (s listSpec) base(columns string) sq.SelectBuilder {
	b := psql.Select(columns).From(s.from)
	for _, j := range s.joins {
		b = b.LeftJoin(j)
	}
	return b
}

func (s listSpec) where(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if search := strings.TrimSpace(filter.Search); search != "" && len(s.searchFields) > 0 {
		or := sq.Or{}
		for _, field := range s.searchFields {
			or = append(or, sq.ILike{field: "%" + search + "%"})
		}
		b = b.Where(or)
	}

	for key, value := range filter.Filter {
		column, ok := s.filters[key]
		if !ok {
			continue
		}
		raw := fmt.Sprint(value)
		if s.boolFilters[key] {
			if v, err := strconv.ParseBool(raw); err == nil {
				b = b.Where(sq.Eq{column: v})
			}
			continue
		}
		// Поддержка множественных значений через запятую
		if strings.Contains(raw, ",") {
			b = b.Where(sq.Eq{column: strings.Split(raw, ",")})
		} else {
			b = b.Where(sq.Eq{column: raw})
		}
	}
	return b
}

func (s listSpec) order(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	keys := make([]string, 0, len(filter.Sort))
	for field := range filter.Sort {
		if _, ok := s.sorts[field]; ok {
			keys = append(keys, field)
		}
	}
	if len(keys) == 0 {
		return b.OrderBy(s.defaultOrder)
	}
	sort.Strings(keys)
	for _, field := range keys {
		direction := "ASC"
		if strings.EqualFold(filter.Sort[field], "desc") {
			direction = "DESC"
		}
		b = b.OrderBy(s.sorts[field] + " " + direction)
	}
	return b
}

// list выполняет COUNT и SELECT с одинаковыми условиями.
func list[T any](ctx context.Context, q Querier, s listSpec, filter types.Filter, scan func(pgx.Row) (*T, error)) ([]T, uint64, error) {
	countQuery, countArgs, err := s.where(s.base("COUNT(*)"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки SQL count: %w", err)
	}

	var total uint64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения count: %w", err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	b := s.order(s.where(s.base(s.columns), filter), filter)
	if filter.WithPagination {
		if filter.Limit > 0 {
			b = b.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			b = b.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки SQL select: %w", err)
	}
	items, err := queryAll(ctx, q, query, args, scan)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func queryAll[T any](ctx context.Context, q Querier, query string, args []interface{}, scan func(pgx.Row) (*T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения select: %w", err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return items, nil
}

func exists(ctx context.Context, q Querier, table, id string) (bool, error) {
	query, args, err := psql.Select("1").From(table).Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	if err := q.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
