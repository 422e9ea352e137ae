package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/kdrnck/msgsudot-nye/domain"
)

// GetTasksByCategories, seçili kategorilerden rastgele sırada görev çeker.
// categories boşsa tüm havuz kullanılır. limit üst sınırdır; havuzun yeterliliği
// oyun kurulurken ayrıca doğrulanır.
func (r *Repository) GetTasksByCategories(ctx context.Context, categories []string, limit int) ([]domain.Task, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: non-positive task limit", domain.ErrInvalidInput)
	}

	var query string
	var args []interface{}
	if len(categories) == 0 {
		query = `SELECT id, content, category FROM tasks ORDER BY random() LIMIT $1`
		args = []interface{}{limit}
	} else {
		query = `SELECT id, content, category FROM tasks WHERE category = ANY($1) ORDER BY random() LIMIT $2`
		args = []interface{}{pq.Array(categories), limit}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Content, &task.Category); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}
