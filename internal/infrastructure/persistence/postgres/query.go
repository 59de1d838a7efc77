package postgres

import (
	"context"
	"fmt"
	"strings"
)

// whereBuilder collects AND-ed conditions and their positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

// arg registers v and returns its placeholder.
func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) where(clause string) {
	b.clauses = append(b.clauses, clause)
}

// ilike adds a case-insensitive substring match of term against any of columns.
func (b *whereBuilder) ilike(term string, columns ...string) {
	p := b.arg(likePattern(term))
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE " + p
	}
	if len(parts) == 1 {
		b.where(parts[0])
		return
	}
	b.where("(" + strings.Join(parts, " OR ") + ")")
}

func (b *whereBuilder) sql() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// page appends LIMIT/OFFSET using args that follow the filter args.
func (b *whereBuilder) page(limit, offset int) (string, []any) {
	args := append([]any{}, b.args...)
	args = append(args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func (b *whereBuilder) count(ctx context.Context, q Executor, from string) (int, error) {
	var total int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+from+b.sql(), b.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return total, nil
}

// likePattern escapes LIKE metacharacters so user input is matched literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
