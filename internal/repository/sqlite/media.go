// filepath: internal/repository/sqlite/media.go
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
	"strings"

	"github.com/Masterminds/squirrel"
)

var mediaColumns = []string{
	"id", "name", "description", "title", "rating", "type", "status",
	"release_date", "first_air_date", "last_air_date",
	"number_of_seasons", "number_of_episodes", "episode_run_time",
	"genres", "author", "avatar", "background",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func scanMedia(row rowScanner) (models.MediaItem, error) {
	var (
		item                       models.MediaItem
		mediaType, genres          string
		release, firstAir, lastAir sql.NullString
		seasons, episodes, runtime sql.NullInt64
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Title, &item.Rating, &mediaType, &item.Status,
		&release, &firstAir, &lastAir,
		&seasons, &episodes, &runtime,
		&genres, &item.Author, &item.Avatar, &item.Background,
	)
	if err != nil {
		return item, err
	}

	item.Type = models.MediaType(mediaType)
	item.ReleaseDate = stringPtr(release)
	item.FirstAirDate = stringPtr(firstAir)
	item.LastAirDate = stringPtr(lastAir)
	item.NumberOfSeasons = intPtr(seasons)
	item.NumberOfEpisodes = intPtr(episodes)
	item.EpisodeRunTime = intPtr(runtime)
	if err := json.Unmarshal([]byte(genres), &item.Genres); err != nil {
		return item, fmt.Errorf("invalid genres for media %d: %w", item.ID, err)
	}
	return item, nil
}

// mediaValues returns the column values of item in mediaColumns order, without id.
func mediaValues(item *models.MediaItem) ([]interface{}, error) {
	genres, err := json.Marshal(item.Genres)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		item.Name, item.Description, item.Title, item.Rating, string(item.Type), item.Status,
		item.ReleaseDate, item.FirstAirDate, item.LastAirDate,
		item.NumberOfSeasons, item.NumberOfEpisodes, item.EpisodeRunTime,
		string(genres), item.Author, item.Avatar, item.Background,
	}, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// mediaFilter translates a catalog query into a WHERE clause.
func mediaFilter(q catalog.Query) squirrel.And {
	where := squirrel.And{}
	if q.Search != "" {
		where = append(where, squirrel.Expr(`name LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(q.Search)+"%"))
	}
	if q.Type != "" {
		where = append(where, squirrel.Eq{"type": string(q.Type)})
	}
	if q.Genre != "" {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM json_each(media.genres) WHERE lower(json_each.value) = lower(?))", q.Genre))
	}
	if q.Author != "" {
		where = append(where, squirrel.Eq{"author": q.Author})
	}
	return where
}

func (s *SQLiteRepository) ListMedia(ctx context.Context, q catalog.Query) ([]models.MediaItem, int, error) {
	where := mediaFilter(q)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	countSQL, countArgs, err := s.Builder.Select("COUNT(*)").From("media").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int
	if err := tx.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media: %w", err)
	}

	query := s.Builder.Select(mediaColumns...).From("media").Where(where).OrderBy("id ASC")
	if q.Limit > 0 {
		offset := catalog.Offset(q.Page, q.Limit)
		if offset >= total {
			return []models.MediaItem{}, total, tx.Commit()
		}
		query = query.Limit(uint64(q.Limit)).Offset(uint64(offset))
	}
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build select query: %w", err)
	}
	logging.Log.Debugf("Generated SQL for ListMedia: %s %v", sqlQuery, args)

	items, err := s.queryMedia(ctx, tx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, tx.Commit()
}

func (s *SQLiteRepository) queryMedia(ctx context.Context, db queryer, sqlQuery string, args ...interface{}) ([]models.MediaItem, error) {
	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}
	defer rows.Close()

	items := make([]models.MediaItem, 0)
	for rows.Next() {
		item, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return items, nil
}

func (s *SQLiteRepository) getMedia(ctx context.Context, db queryer, id int64) (*models.MediaItem, error) {
	sqlQuery, args, err := s.Builder.Select(mediaColumns...).From("media").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}
	item, err := scanMedia(db.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *SQLiteRepository) GetMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	return s.getMedia(ctx, s.DB, id)
}

func (s *SQLiteRepository) insertMedia(ctx context.Context, tx *sql.Tx, item *models.MediaItem, withID bool) (int64, error) {
	values, err := mediaValues(item)
	if err != nil {
		return 0, err
	}
	columns := mediaColumns[1:]
	if withID {
		columns = mediaColumns
		values = append([]interface{}{item.ID}, values...)
	}

	sqlInsert, args, err := s.Builder.Insert("media").Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}
	res, err := tx.ExecContext(ctx, sqlInsert, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert media: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteRepository) CreateMedia(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insertMedia(ctx, tx, item, false)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	created := *item
	created.ID = id
	logging.Log.Debugf("CreateMedia: media '%s' created with ID %d", created.Name, id)
	return &created, nil
}

func (s *SQLiteRepository) UpdateMedia(ctx context.Context, id int64, apply func(*models.MediaItem) error) (*models.MediaItem, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.getMedia(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(item); err != nil {
		return nil, err
	}
	item.ID = id

	values, err := mediaValues(item)
	if err != nil {
		return nil, err
	}
	update := s.Builder.Update("media").Where(squirrel.Eq{"id": id})
	for i, col := range mediaColumns[1:] {
		update = update.Set(col, values[i])
	}
	sqlUpdate, args, err := update.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlUpdate, args...); err != nil {
		return nil, fmt.Errorf("failed to update media: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return item, nil
}

func (s *SQLiteRepository) DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.getMedia(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	sqlDelete, args, err := s.Builder.Delete("media").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlDelete, args...); err != nil {
		return nil, fmt.Errorf("failed to delete media: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return item, nil
}
