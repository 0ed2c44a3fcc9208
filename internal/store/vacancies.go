package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hhscout-engine/internal/domain"
)

// SaveVacancies upserts a parsed batch into one project. Skills are
// replaced wholesale per vacancy so re-collection never duplicates them.
func (d *DB) SaveVacancies(ctx context.Context, projectID int64, vacancies []domain.Vacancy) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	fetchedAt := now()

	for _, v := range vacancies {
		rolesJSON, _ := json.Marshal(v.ProfessionalRoles)

		if _, err := tx.ExecContext(ctx, `
INSERT OR REPLACE INTO vacancies (
  id, project_id, name, url, published_at, created_at,
  company_name, company_url, area, experience, employment, schedule,
  salary_from, salary_to, salary_currency, salary_gross,
  description, full_text, professional_roles, fetched_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
			v.ID, projectID, v.Name, v.URL, v.PublishedAt, v.CreatedAt,
			v.CompanyName, v.CompanyURL, v.Area, v.Experience, v.Employment, v.Schedule,
			v.SalaryFrom, v.SalaryTo, nullStr(v.SalaryCurrency), nullBool(v.SalaryGross),
			v.Description, v.FullText, string(rolesJSON), fetchedAt,
		); err != nil {
			return fmt.Errorf("save vacancy %s: %w", v.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM skills WHERE vacancy_id = ? AND project_id = ?;`, v.ID, projectID); err != nil {
			return err
		}
		for _, skill := range v.KeySkills {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO skills (vacancy_id, project_id, skill) VALUES (?,?,?);`,
				v.ID, projectID, skill); err != nil {
				return err
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?;`, fetchedAt, projectID); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadVacancies returns a project's collection with skills attached,
// in stable insertion order.
func (d *DB) LoadVacancies(ctx context.Context, projectID int64) ([]domain.Vacancy, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, name, url, published_at, created_at,
       company_name, company_url, area, experience, employment, schedule,
       salary_from, salary_to, salary_currency, salary_gross,
       description, full_text, professional_roles
FROM vacancies
WHERE project_id = ?
ORDER BY rowid;`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		var currency sql.NullString
		var gross sql.NullBool
		var rolesJSON string
		if err := rows.Scan(
			&v.ID, &v.Name, &v.URL, &v.PublishedAt, &v.CreatedAt,
			&v.CompanyName, &v.CompanyURL, &v.Area, &v.Experience, &v.Employment, &v.Schedule,
			&v.SalaryFrom, &v.SalaryTo, &currency, &gross,
			&v.Description, &v.FullText, &rolesJSON,
		); err != nil {
			return nil, err
		}
		if currency.Valid {
			v.SalaryCurrency = currency.String
		}
		if gross.Valid {
			g := gross.Bool
			v.SalaryGross = &g
		}
		_ = json.Unmarshal([]byte(rolesJSON), &v.ProfessionalRoles)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := d.attachSkills(ctx, projectID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DB) attachSkills(ctx context.Context, projectID int64, vacancies []domain.Vacancy) error {
	if len(vacancies) == 0 {
		return nil
	}

	rows, err := d.Pool.QueryContext(ctx, `
SELECT vacancy_id, skill
FROM skills
WHERE project_id = ?
ORDER BY rowid;`, projectID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[string][]string)
	for rows.Next() {
		var id, skill string
		if err := rows.Scan(&id, &skill); err != nil {
			return err
		}
		byID[id] = append(byID[id], skill)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range vacancies {
		vacancies[i].KeySkills = byID[vacancies[i].ID]
	}
	return nil
}

// CountVacancies is the cheap variant for status endpoints.
func (d *DB) CountVacancies(ctx context.Context, projectID int64) (int, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vacancies WHERE project_id = ?;`, projectID).Scan(&n)
	return n, err
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
