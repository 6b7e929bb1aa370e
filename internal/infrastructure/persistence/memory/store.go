// Package memory provides an in-process OrganizationStore used in tests.
// It honors the same contract as the postgres store: multi-record
// operations are atomic (guarded by one mutex) and the organization name
// is unique.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orgstack/orgd/internal/application/ports"
	"github.com/orgstack/orgd/internal/domain"
	domerrors "github.com/orgstack/orgd/internal/domain/errors"
)

type Store struct {
	mu     sync.Mutex
	orgs   map[string]*domain.Organization
	admins map[domain.AdminID]*domain.Admin
	docs   map[string][]*domain.Document
}

func NewStore() *Store {
	return &Store{
		orgs:   make(map[string]*domain.Organization),
		admins: make(map[domain.AdminID]*domain.Admin),
		docs:   make(map[string][]*domain.Document),
	}
}

func (s *Store) GetOrganization(_ context.Context, name string) (*domain.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[name]
	if !ok {
		return nil, nil
	}
	cp := *org
	return &cp, nil
}

func (s *Store) GetAdminByEmail(_ context.Context, email string) (*domain.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateOrganization(_ context.Context, org *domain.Organization, admin *domain.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[org.Name]; ok {
		return domerrors.ErrOrgExists
	}
	orgCp := *org
	adminCp := *admin
	s.orgs[org.Name] = &orgCp
	s.admins[admin.ID] = &adminCp
	return nil
}

func (s *Store) RenameOrganization(_ context.Context, params ports.RenameParams) (*domain.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[params.CurrentName]
	if !ok {
		return nil, domerrors.ErrOrgNotFound
	}
	if params.NewName != params.CurrentName {
		if _, taken := s.orgs[params.NewName]; taken {
			return nil, domerrors.ErrOrgExists
		}
		oldCollection := org.CollectionName
		newCollection := domain.CollectionName(params.NewName)
		for _, d := range s.docs[oldCollection] {
			s.docs[newCollection] = append(s.docs[newCollection], &domain.Document{
				ID:             uuid.New(),
				CollectionName: newCollection,
				Body:           d.Body,
				CreatedAt:      time.Now(),
			})
		}
		delete(s.docs, oldCollection)
		delete(s.orgs, params.CurrentName)
		org.Name = params.NewName
		org.CollectionName = newCollection
		s.orgs[params.NewName] = org
	}
	org.UpdatedAt = time.Now()
	for _, a := range s.admins {
		if a.Organization == params.CurrentName {
			a.Organization = params.NewName
			a.Email = params.NewEmail
			a.PasswordHash = params.NewPasswordHash
			a.UpdatedAt = time.Now()
		}
	}
	cp := *org
	return &cp, nil
}

func (s *Store) DeleteOrganization(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	org, ok := s.orgs[name]
	if !ok {
		return domerrors.ErrOrgNotFound
	}
	delete(s.docs, org.CollectionName)
	delete(s.orgs, name)
	for id, a := range s.admins {
		if a.Organization == name {
			delete(s.admins, id)
		}
	}
	return nil
}

func (s *Store) InsertDocument(_ context.Context, collection string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[collection] = append(s.docs[collection], &domain.Document{
		ID:             uuid.New(),
		CollectionName: collection,
		Body:           body,
		CreatedAt:      time.Now(),
	})
	return nil
}

func (s *Store) ListDocuments(_ context.Context, collection string) ([]*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]*domain.Document, 0, len(s.docs[collection]))
	for _, d := range s.docs[collection] {
		cp := *d
		docs = append(docs, &cp)
	}
	return docs, nil
}

func (s *Store) CollectionExists(_ context.Context, collection string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs[collection]) > 0, nil
}

var (
	_ ports.OrganizationStore = (*Store)(nil)
	_ ports.AdminRepository   = (*Store)(nil)
	_ ports.DocumentStore     = (*Store)(nil)
)
