package db

import (
	"context"
)

const createUser = `
INSERT INTO users (id, email, password, display_name)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password, display_name, created_at`

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.Email, arg.Password, arg.DisplayName)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

const designColumns = `id, name, owner_id, motif, width, height, created_at, updated_at`

func scanDesign(row interface{ Scan(...any) error }) (Design, error) {
	var d Design
	err := row.Scan(&d.ID, &d.Name, &d.OwnerID, &d.Motif, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const createDesign = `
INSERT INTO designs (id, name, owner_id, motif, width, height)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + designColumns

type CreateDesignParams struct {
	ID      string
	Name    string
	OwnerID string
	Motif   string
	Width   float64
	Height  float64
}

func (q *Queries) CreateDesign(ctx context.Context, arg CreateDesignParams) (Design, error) {
	return scanDesign(q.db.QueryRow(ctx, createDesign,
		arg.ID, arg.Name, arg.OwnerID, arg.Motif, arg.Width, arg.Height))
}

const getDesign = `SELECT ` + designColumns + ` FROM designs WHERE id = $1`

func (q *Queries) GetDesign(ctx context.Context, id string) (Design, error) {
	return scanDesign(q.db.QueryRow(ctx, getDesign, id))
}

const listDesignsByOwner = `
SELECT ` + designColumns + ` FROM designs WHERE owner_id = $1 ORDER BY updated_at DESC`

func (q *Queries) ListDesignsByOwner(ctx context.Context, ownerID string) ([]Design, error) {
	rows, err := q.db.Query(ctx, listDesignsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const updateDesign = `
UPDATE designs SET name = $2, motif = $3, width = $4, height = $5, updated_at = now()
WHERE id = $1
RETURNING ` + designColumns

type UpdateDesignParams struct {
	ID     string
	Name   string
	Motif  string
	Width  float64
	Height float64
}

func (q *Queries) UpdateDesign(ctx context.Context, arg UpdateDesignParams) (Design, error) {
	return scanDesign(q.db.QueryRow(ctx, updateDesign,
		arg.ID, arg.Name, arg.Motif, arg.Width, arg.Height))
}

const deleteDesign = `DELETE FROM designs WHERE id = $1`

func (q *Queries) DeleteDesign(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteDesign, id)
	return err
}

const versionColumns = `id, design_id, version, panel, created_by, created_at`

func scanVersion(row interface{ Scan(...any) error }) (DesignVersion, error) {
	var v DesignVersion
	err := row.Scan(&v.ID, &v.DesignID, &v.Version, &v.Panel, &v.CreatedBy, &v.CreatedAt)
	return v, err
}

// createDesignVersion numbers the new row one past the design's latest.
const createDesignVersion = `
INSERT INTO design_versions (id, design_id, version, panel, created_by)
VALUES ($1, $2,
    COALESCE((SELECT MAX(version) FROM design_versions WHERE design_id = $2), 0) + 1,
    $3, $4)
RETURNING ` + versionColumns

type CreateDesignVersionParams struct {
	ID        string
	DesignID  string
	Panel     []byte
	CreatedBy string
}

func (q *Queries) CreateDesignVersion(ctx context.Context, arg CreateDesignVersionParams) (DesignVersion, error) {
	return scanVersion(q.db.QueryRow(ctx, createDesignVersion,
		arg.ID, arg.DesignID, arg.Panel, arg.CreatedBy))
}

const getLatestVersion = `
SELECT ` + versionColumns + ` FROM design_versions
WHERE design_id = $1 ORDER BY version DESC LIMIT 1`

func (q *Queries) GetLatestVersion(ctx context.Context, designID string) (DesignVersion, error) {
	return scanVersion(q.db.QueryRow(ctx, getLatestVersion, designID))
}

const listDesignVersions = `
SELECT ` + versionColumns + ` FROM design_versions
WHERE design_id = $1 ORDER BY version DESC`

func (q *Queries) ListDesignVersions(ctx context.Context, designID string) ([]DesignVersion, error) {
	rows, err := q.db.Query(ctx, listDesignVersions, designID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DesignVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

const createAsset = `
INSERT INTO assets (id, design_id, version, url, size)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, design_id, version, url, size, created_at`

type CreateAssetParams struct {
	ID       string
	DesignID string
	Version  int32
	URL      string
	Size     int64
}

func (q *Queries) CreateAsset(ctx context.Context, arg CreateAssetParams) (Asset, error) {
	row := q.db.QueryRow(ctx, createAsset, arg.ID, arg.DesignID, arg.Version, arg.URL, arg.Size)
	var a Asset
	err := row.Scan(&a.ID, &a.DesignID, &a.Version, &a.URL, &a.Size, &a.CreatedAt)
	return a, err
}
