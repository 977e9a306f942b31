// filepath: internal/repository/sqlite/transfer.go
package sqlite

import (
	"context"
	"fmt"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
)

// Export reads every media item and user into a flat-file document.
func (s *SQLiteRepository) Export(ctx context.Context) (*models.Document, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	sqlQuery, args, err := s.Builder.Select(mediaColumns...).From("media").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}
	media, err := s.queryMedia(ctx, tx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	sqlQuery, args, err = s.Builder.Select("name", "email", "password_hash").From("users").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}
	rows, err := tx.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.DocumentUser, 0)
	for rows.Next() {
		var u models.DocumentUser
		if err := rows.Scan(&u.Name, &u.Email, &u.Password); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}

	return &models.Document{Media: media, User: users}, tx.Commit()
}

// Import replaces all media and users with the contents of doc in a single
// transaction. Media identifiers are kept as they are in the document.
func (s *SQLiteRepository) Import(ctx context.Context, doc *models.Document) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"media", "users"} {
		sqlDelete, args, err := s.Builder.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlDelete, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range doc.Media {
		if _, err := s.insertMedia(ctx, tx, &doc.Media[i], true); err != nil {
			return fmt.Errorf("media %d: %w", doc.Media[i].ID, err)
		}
	}

	for _, u := range doc.User {
		sqlInsert, args, err := s.Builder.Insert("users").
			Columns("name", "email", "password_hash").
			Values(u.Name, u.Email, u.Password).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlInsert, args...); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.Cache.Flush()

	logging.Log.Infof("Imported %d media items and %d users", len(doc.Media), len(doc.User))
	return nil
}
