package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"flow-ai/threadview/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateThread(ctx context.Context, thread *model.Thread) error {
	query := "INSERT INTO threads (id, title, agent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, thread.ID, thread.Title, thread.AgentID, thread.CreatedAt, thread.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetThread(ctx context.Context, threadID string) (*model.Thread, error) {
	query := "SELECT id, title, agent_id, created_at, updated_at FROM threads WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, threadID)

	var thread model.Thread
	var agentID sql.NullString
	err := row.Scan(&thread.ID, &thread.Title, &agentID, &thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if agentID.Valid {
		thread.AgentID = &agentID.String
	}
	return &thread, nil
}

func (r *sqliteRepository) GetThreads(ctx context.Context) ([]*model.Thread, error) {
	query := "SELECT id, title, agent_id, created_at, updated_at FROM threads ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threads := []*model.Thread{}
	for rows.Next() {
		var thread model.Thread
		var agentID sql.NullString
		if err := rows.Scan(&thread.ID, &thread.Title, &agentID, &thread.CreatedAt, &thread.UpdatedAt); err != nil {
			return nil, err
		}
		if agentID.Valid {
			thread.AgentID = &agentID.String
		}
		threads = append(threads, &thread)
	}
	return threads, rows.Err()
}

func (r *sqliteRepository) UpdateThreadTitle(ctx context.Context, threadID, newTitle string) error {
	query := "UPDATE threads SET title = ?, updated_at = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, newTitle, time.Now().UTC(), threadID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *sqliteRepository) DeleteThread(ctx context.Context, threadID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE thread_id = ?", threadID); err != nil {
		return fmt.Errorf("could not delete messages: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM threads WHERE id = ?", threadID)
	if err != nil {
		return fmt.Errorf("could not delete thread: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var metadata sql.NullString
	if message.Metadata != "" {
		metadata.String = message.Metadata
		metadata.Valid = true
	}

	insertMsgQuery := `
		INSERT INTO messages (message_id, thread_id, type, content, metadata, agent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertMsgQuery,
		message.ID(),
		message.ThreadID,
		string(message.Type),
		message.Content,
		metadata,
		message.AgentID,
		message.CreatedAt,
		message.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: message %s", ErrDuplicate, message.ID())
		}
		return fmt.Errorf("could not insert message: %w", err)
	}

	// created_at may be client supplied; updated_at only moves forward.
	res, err := tx.ExecContext(ctx, "UPDATE threads SET updated_at = ? WHERE id = ?", time.Now().UTC(), message.ThreadID)
	if err != nil {
		return fmt.Errorf("could not update thread timestamp: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, threadID string) ([]model.Message, error) {
	query := `
		SELECT message_id, thread_id, type, content, metadata, agent_id, created_at, updated_at
		FROM messages
		WHERE thread_id = ?
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var msg model.Message
		var messageID string
		var msgType string
		var metadata sql.NullString
		var agentID sql.NullString

		if err := rows.Scan(&messageID, &msg.ThreadID, &msgType, &msg.Content, &metadata, &agentID, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
			return nil, err
		}

		msg.MessageID = &messageID
		msg.Type = model.MessageType(msgType)
		if metadata.Valid {
			msg.Metadata = metadata.String
		}
		if agentID.Valid {
			msg.AgentID = &agentID.String
		}

		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
