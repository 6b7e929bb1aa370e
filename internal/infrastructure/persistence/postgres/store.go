package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgstack/orgd/internal/application/ports"
	"github.com/orgstack/orgd/internal/domain"
	domerrors "github.com/orgstack/orgd/internal/domain/errors"
)

const (
	getOrgSQL = `SELECT name, collection_name, admin_id, created_at, updated_at
		FROM organizations WHERE name = $1`
	getOrgForUpdateSQL = getOrgSQL + ` FOR UPDATE`
	insertOrgSQL       = `INSERT INTO organizations (name, collection_name, admin_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	renameOrgSQL = `UPDATE organizations
		SET name = $1, collection_name = $2, updated_at = now()
		WHERE name = $3
		RETURNING name, collection_name, admin_id, created_at, updated_at`
	deleteOrgSQL = `DELETE FROM organizations WHERE name = $1`

	getAdminByEmailSQL = `SELECT id, email, password_hash, organization, created_at, updated_at
		FROM admins WHERE email = $1 LIMIT 1`
	insertAdminSQL = `INSERT INTO admins (id, email, password_hash, organization, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	updateAdminsSQL = `UPDATE admins
		SET organization = $1, email = $2, password_hash = $3, updated_at = now()
		WHERE organization = $4`
	deleteAdminsSQL = `DELETE FROM admins WHERE organization = $1`

	copyCollectionSQL = `INSERT INTO tenant_documents (id, collection_name, body, created_at)
		SELECT gen_random_uuid(), $1, body, now()
		FROM tenant_documents WHERE collection_name = $2`
	dropCollectionSQL   = `DELETE FROM tenant_documents WHERE collection_name = $1`
	insertDocumentSQL   = `INSERT INTO tenant_documents (id, collection_name, body, created_at) VALUES ($1, $2, $3, now())`
	listDocumentsSQL    = `SELECT id, collection_name, body, created_at FROM tenant_documents WHERE collection_name = $1 ORDER BY created_at`
	collectionExistsSQL = `SELECT EXISTS (SELECT 1 FROM tenant_documents WHERE collection_name = $1)`
)

// Store implements ports.OrganizationStore, ports.AdminRepository and
// ports.DocumentStore on a pgx pool. Multi-record operations run inside a
// single transaction; the organization row is locked FOR UPDATE first, so
// structural operations on the same organization serialize.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) GetOrganization(ctx context.Context, name string) (*domain.Organization, error) {
	org, err := scanOrg(s.pool.QueryRow(ctx, getOrgSQL, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	return org, nil
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var a domain.Admin
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, getAdminByEmailSQL, email).
		Scan(&id, &a.Email, &a.PasswordHash, &a.Organization, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	a.ID = domain.NewAdminID(id)
	return &a, nil
}

func (s *Store) CreateOrganization(ctx context.Context, org *domain.Organization, admin *domain.Admin) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertAdminSQL,
			admin.ID.UUID, admin.Email, admin.PasswordHash, admin.Organization,
			admin.CreatedAt, admin.UpdatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, insertOrgSQL,
			org.Name, org.CollectionName, org.AdminID.UUID,
			org.CreatedAt, org.UpdatedAt)
		return err
	})
}

func (s *Store) RenameOrganization(ctx context.Context, params ports.RenameParams) (*domain.Organization, error) {
	var updated *domain.Organization
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		// Lock the organization row first; a concurrent rename or delete of
		// the same organization blocks here until this transaction ends.
		current, err := scanOrg(tx.QueryRow(ctx, getOrgForUpdateSQL, params.CurrentName))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domerrors.ErrOrgNotFound
			}
			return err
		}
		newCollection := domain.CollectionName(params.NewName)
		if params.NewName != current.Name {
			// Copy content into the new collection with fresh ids, then
			// remove the old collection. Absent old collection is a no-op.
			if _, err := tx.Exec(ctx, copyCollectionSQL, newCollection, current.CollectionName); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, dropCollectionSQL, current.CollectionName); err != nil {
				return err
			}
		}
		// The primary key constraint rejects a rename onto a name that was
		// taken after the use case's conflict pre-check.
		updated, err = scanOrg(tx.QueryRow(ctx, renameOrgSQL, params.NewName, newCollection, current.Name))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, updateAdminsSQL,
			params.NewName, params.NewEmail, params.NewPasswordHash, current.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteOrganization(ctx context.Context, name string) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		org, err := scanOrg(tx.QueryRow(ctx, getOrgForUpdateSQL, name))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domerrors.ErrOrgNotFound
			}
			return err
		}
		if _, err := tx.Exec(ctx, deleteOrgSQL, org.Name); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, deleteAdminsSQL, org.Name); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, dropCollectionSQL, org.CollectionName)
		return err
	})
}

func (s *Store) InsertDocument(ctx context.Context, collection string, body []byte) error {
	_, err := s.pool.Exec(ctx, insertDocumentSQL, uuid.New(), collection, body)
	return mapError(err)
}

func (s *Store) ListDocuments(ctx context.Context, collection string) ([]*domain.Document, error) {
	rows, err := s.pool.Query(ctx, listDocumentsSQL, collection)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	var docs []*domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.CollectionName, &d.Body, &d.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		docs = append(docs, &d)
	}
	return docs, mapError(rows.Err())
}

func (s *Store) CollectionExists(ctx context.Context, collection string) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, collectionExistsSQL, collection).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

// withTx runs fn inside a transaction and maps postgres errors to domain
// sentinels on the way out.
func (s *Store) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return mapError(err)
	}
	return mapError(tx.Commit(ctx))
}

func scanOrg(row pgx.Row) (*domain.Organization, error) {
	var o domain.Organization
	var adminID uuid.UUID
	if err := row.Scan(&o.Name, &o.CollectionName, &adminID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.AdminID = domain.NewAdminID(adminID)
	return &o, nil
}

var (
	_ ports.OrganizationStore = (*Store)(nil)
	_ ports.AdminRepository   = (*Store)(nil)
	_ ports.DocumentStore     = (*Store)(nil)
)
