package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrDefaultProject  = errors.New("the default project cannot be deleted")
)

type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Query        string `json:"query"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	VacancyCount int    `json:"vacancy_count"`
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func (d *DB) CreateProject(ctx context.Context, name, query string) (int64, error) {
	ts := now()
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO projects (name, query, created_at, updated_at)
VALUES (?, ?, ?, ?);`, name, query, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return res.LastInsertId()
}

// ListProjects returns every project with its vacancy count, most
// recently updated first.
func (d *DB) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT p.id, p.name, p.query, p.created_at, p.updated_at, COUNT(v.id)
FROM projects p
LEFT JOIN vacancies v ON p.id = v.project_id
GROUP BY p.id
ORDER BY p.updated_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Query, &p.CreatedAt, &p.UpdatedAt, &p.VacancyCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) GetProject(ctx context.Context, id int64) (Project, error) {
	var p Project
	err := d.Pool.QueryRowContext(ctx, `
SELECT p.id, p.name, p.query, p.created_at, p.updated_at,
       (SELECT COUNT(*) FROM vacancies v WHERE v.project_id = p.id)
FROM projects p
WHERE p.id = ?;`, id).Scan(&p.ID, &p.Name, &p.Query, &p.CreatedAt, &p.UpdatedAt, &p.VacancyCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	}
	return p, err
}

// UpdateProject changes name and/or query; nil leaves a field alone.
func (d *DB) UpdateProject(ctx context.Context, id int64, name, query *string) error {
	set := "updated_at = ?"
	args := []any{now()}
	if name != nil {
		set += ", name = ?"
		args = append(args, *name)
	}
	if query != nil {
		set += ", query = ?"
		args = append(args, *query)
	}
	args = append(args, id)

	res, err := d.Pool.ExecContext(ctx, `UPDATE projects SET `+set+` WHERE id = ?;`, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteProject removes a project with its vacancies and skills.
func (d *DB) DeleteProject(ctx context.Context, id int64) error {
	if id == DefaultProjectID {
		return ErrDefaultProject
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM skills WHERE project_id = ?;`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM vacancies WHERE project_id = ?;`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectNotFound
	}
	return tx.Commit()
}
