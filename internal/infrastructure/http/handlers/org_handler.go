package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/orgstack/orgd/internal/application/lifecycle"
	"github.com/orgstack/orgd/internal/infrastructure/http/middleware"
)

// OrgHandler serves the organization lifecycle endpoints. Create is public;
// update and delete operate on the caller's own organization, resolved from
// the token by the auth middleware.
type OrgHandler struct {
	create   *lifecycle.CreateOrganization
	rename   *lifecycle.RenameOrganization
	remove   *lifecycle.DeleteOrganization
	validate *validator.Validate
	log      zerolog.Logger
}

func NewOrgHandler(create *lifecycle.CreateOrganization, rename *lifecycle.RenameOrganization, remove *lifecycle.DeleteOrganization, log zerolog.Logger) *OrgHandler {
	return &OrgHandler{
		create:   create,
		rename:   rename,
		remove:   remove,
		validate: validator.New(),
		log:      log,
	}
}

type orgRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,max=63"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Password         string `json:"password" validate:"required,min=8,max=128"`
}

func (h *OrgHandler) decode(w http.ResponseWriter, r *http.Request) (*orgRequest, bool) {
	var body orgRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return nil, false
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return nil, false
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	return &body, true
}

func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	result, err := h.create.Execute(r.Context(), lifecycle.CreateOrganizationInput{
		Name:     body.OrganizationName,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "org.create", body.OrganizationName, false, err.Error())
		middleware.RecordLifecycleOp("create", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "org.create", result.Organization.Name, true, "")
	middleware.RecordLifecycleOp("create", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Organization created successfully",
		"organization": result.Organization.Name,
	})
}

func (h *OrgHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	body, ok := h.decode(w, r)
	if !ok {
		return
	}
	result, err := h.rename.Execute(r.Context(), lifecycle.RenameOrganizationInput{
		CurrentName: identity.Organization,
		NewName:     body.OrganizationName,
		NewEmail:    body.Email,
		NewPassword: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "org.update", identity.Organization, false, err.Error())
		middleware.RecordLifecycleOp("rename", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "org.update", result.Organization.Name, true, "")
	middleware.RecordLifecycleOp("rename", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Organization updated successfully",
		"old_organization": result.OldName,
		"new_organization": result.Organization.Name,
	})
}

func (h *OrgHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	if err := h.remove.Execute(r.Context(), lifecycle.DeleteOrganizationInput{
		Name: identity.Organization,
	}); err != nil {
		AuditLog(h.log, r, "org.delete", identity.Organization, false, err.Error())
		middleware.RecordLifecycleOp("delete", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "org.delete", identity.Organization, true, "")
	middleware.RecordLifecycleOp("delete", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Organization '" + identity.Organization + "' deleted successfully",
	})
}
