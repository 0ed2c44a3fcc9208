package store

import "database/sql"

// DefaultProjectID always exists and cannot be deleted; collections that
// name no project land here.
const DefaultProjectID int64 = 1

// Migrate brings the schema to the current version, tracked through
// PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS projects (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  query TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS vacancies (
  id TEXT NOT NULL,
  project_id INTEGER NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  published_at TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT '',
  company_name TEXT NOT NULL DEFAULT '',
  company_url TEXT NOT NULL DEFAULT '',
  area TEXT NOT NULL DEFAULT '',
  experience TEXT NOT NULL DEFAULT '',
  employment TEXT NOT NULL DEFAULT '',
  schedule TEXT NOT NULL DEFAULT '',
  salary_from INTEGER,
  salary_to INTEGER,
  salary_currency TEXT,
  salary_gross INTEGER,
  description TEXT NOT NULL DEFAULT '',
  full_text TEXT NOT NULL DEFAULT '',
  professional_roles TEXT NOT NULL DEFAULT '[]',
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (id, project_id),
  FOREIGN KEY (project_id) REFERENCES projects(id)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS skills (
  vacancy_id TEXT NOT NULL,
  project_id INTEGER NOT NULL,
  skill TEXT NOT NULL,
  FOREIGN KEY (vacancy_id, project_id) REFERENCES vacancies(id, project_id)
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_vacancies_project
ON vacancies(project_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_skills_vacancy
ON skills(vacancy_id, project_id);
`); err != nil {
		return err
	}

	// Seed the default project.
	if _, err := tx.Exec(`
INSERT INTO projects (id, name, query, created_at, updated_at)
SELECT ?, 'Default Project', '', datetime('now'), datetime('now')
WHERE NOT EXISTS (SELECT 1 FROM projects WHERE id = ?);
`, DefaultProjectID, DefaultProjectID); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
