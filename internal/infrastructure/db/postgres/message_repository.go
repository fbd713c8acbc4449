package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pingado/messaging-system/internal/core/domain"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

const messageColumns = `id, text, from_id, to_id, read, date, created_at, updated_at`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(&m.ID, &m.Text, &m.FromID, &m.ToID, &m.Read, &m.Date, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO messages (text, from_id, to_id, read, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+messageColumns,
		message.Text, message.FromID, message.ToID, message.Read, message.Date)
	return scanMessage(row)
}

func (r *MessageRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*domain.Message, error) {
	return scanMessage(r.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
}

func (r *MessageRepository) Update(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE messages SET text = $1, read = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING `+messageColumns,
		message.Text, message.Read, message.ID)
	return scanMessage(row)
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
