package project

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cutboard/cutboard-agent/internal/timeline"
)

type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	DeleteProject(ctx context.Context, id string) error

	LoadSnapshot(ctx context.Context, projectID string) (*timeline.Snapshot, error)
	SaveSnapshot(ctx context.Context, projectID string, snap *timeline.Snapshot) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, p *Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM projects WHERE id = ?
	`, id)

	var p Project
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM projects ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		var p Project
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) LoadSnapshot(ctx context.Context, projectID string) (*timeline.Snapshot, error) {
	snap := &timeline.Snapshot{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, path, filename, duration, width, height, size
		FROM video_assets WHERE project_id = ? ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a timeline.VideoAsset
		if err := rows.Scan(&a.ID, &a.Path, &a.Filename, &a.Duration, &a.Width, &a.Height, &a.Size); err != nil {
			return nil, err
		}
		snap.VideoAssets = append(snap.VideoAssets, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, path, filename, width, height, size
		FROM image_assets WHERE project_id = ? ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a timeline.ImageAsset
		if err := rows.Scan(&a.ID, &a.Path, &a.Filename, &a.Width, &a.Height, &a.Size); err != nil {
			return nil, err
		}
		snap.ImageAssets = append(snap.ImageAssets, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, asset_id, project_start, source_in, duration
		FROM clips WHERE project_id = ? ORDER BY position
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c timeline.Clip
		if err := rows.Scan(&c.ID, &c.AssetID, &c.ProjectStart, &c.SourceIn, &c.Duration); err != nil {
			return nil, err
		}
		snap.Clips = append(snap.Clips, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, asset_id, project_start, duration
		FROM timeline_images WHERE project_id = ? ORDER BY position
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var img timeline.Image
		if err := rows.Scan(&img.ID, &img.AssetID, &img.ProjectStart, &img.Duration); err != nil {
			return nil, err
		}
		snap.Images = append(snap.Images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT id, start_time, end_time, text, secondary_text, color
		FROM subtitle_lines WHERE project_id = ? ORDER BY position
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s timeline.SubtitleLine
		var secondary, color sql.NullString
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime, &s.Text, &secondary, &color); err != nil {
			return nil, err
		}
		s.SecondaryText = secondary.String
		s.Color = color.String
		snap.Subtitles = append(snap.Subtitles, &s)
	}
	return snap, rows.Err()
}

// SaveSnapshot persists the full snapshot wholesale inside one transaction,
// replacing whatever was stored before.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, projectID string, snap *timeline.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Format(time.RFC3339)

	for _, table := range []string{"video_assets", "image_assets", "clips", "timeline_images", "subtitle_lines"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE project_id = ?", table), projectID); err != nil {
			return err
		}
	}

	for _, a := range snap.VideoAssets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO video_assets (id, project_id, path, filename, duration, width, height, size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, projectID, a.Path, a.Filename, a.Duration, a.Width, a.Height, a.Size, now); err != nil {
			return err
		}
	}

	for _, a := range snap.ImageAssets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO image_assets (id, project_id, path, filename, width, height, size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, projectID, a.Path, a.Filename, a.Width, a.Height, a.Size, now); err != nil {
			return err
		}
	}

	for i, c := range snap.Clips {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clips (id, project_id, asset_id, project_start, source_in, duration, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, projectID, c.AssetID, c.ProjectStart, c.SourceIn, c.Duration, i); err != nil {
			return err
		}
	}

	for i, img := range snap.Images {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO timeline_images (id, project_id, asset_id, project_start, duration, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, img.ID, projectID, img.AssetID, img.ProjectStart, img.Duration, i); err != nil {
			return err
		}
	}

	for i, s := range snap.Subtitles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO subtitle_lines (id, project_id, start_time, end_time, text, secondary_text, color, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ID, projectID, s.StartTime, s.EndTime, s.Text, nullString(s.SecondaryText), nullString(s.Color), i); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE projects SET updated_at = ? WHERE id = ?", now, projectID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
