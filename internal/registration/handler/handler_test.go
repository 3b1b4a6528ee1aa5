package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lookupservice "partnerhub/internal/lookup/service"
	lookupstore "partnerhub/internal/lookup/store"
	"partnerhub/internal/registration/service"
	"partnerhub/internal/registration/store"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/requestcontext"
)

func newTestHandler(t *testing.T) (*Handler, *service.Registrar) {
	t.Helper()
	mem := store.NewInMemory()
	resolver := lookupservice.New(lookupstore.NewInMemorySeeded())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registrar := service.New(mem, mem, resolver, service.WithLogger(logger))
	return New(registrar, logger), registrar
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// doJSON issues a request with the given user already authenticated,
// the way the auth middleware would present it.
func doJSON(t *testing.T, router chi.Router, method, path string, userID id.UserID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(requestcontext.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func companyBody(regNumber, email string) map[string]any {
	return map[string]any{
		"commonDetails": map[string]any{
			"companyName":        "Acme Exports",
			"registrationNumber": regNumber,
			"country":            "India",
			"contactName":        "Asha Rao",
			"contactEmail":       email,
		},
		"ndaAgreed":          true,
		"headOfficeLocation": "Mumbai",
	}
}

func TestRegisterCompanyEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newRouter(h)

	t.Run("creates the aggregate", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/registration/company", id.UserID(uuid.New()), companyBody("REG-H-1", "h1@acme.example"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Profile struct {
				Classification string `json:"classification"`
				Status         string `json:"status"`
			} `json:"profile"`
			Business struct {
				LegalName           string `json:"legal_name"`
				RegistrationCountry string `json:"registration_country"`
			} `json:"business_details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "COMPANY", resp.Profile.Classification)
		assert.Equal(t, "ACTIVE", resp.Profile.Status)
		assert.Equal(t, "Acme Exports", resp.Business.LegalName)
		assert.Equal(t, "India", resp.Business.RegistrationCountry)
	})

	t.Run("duplicate registration number is a 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/registration/company", id.UserID(uuid.New()), companyBody("REG-H-1", "h2@acme.example"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "registration number")
	})

	t.Run("second registration for the same user is a 409", func(t *testing.T) {
		user := id.UserID(uuid.New())
		rec := doJSON(t, router, http.MethodPost, "/registration/company", user, companyBody("REG-H-2", "h3@acme.example"))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/registration/company", user, companyBody("REG-H-3", "h4@acme.example"))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "profile already exists")
	})

	t.Run("missing required fields is a 400", func(t *testing.T) {
		body := companyBody("REG-H-4", "h5@acme.example")
		delete(body["commonDetails"].(map[string]any), "registrationNumber")
		rec := doJSON(t, router, http.MethodPost, "/registration/company", id.UserID(uuid.New()), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "registrationNumber")
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/registration/company", bytes.NewBufferString("{"))
		req = req.WithContext(requestcontext.WithUserID(req.Context(), id.UserID(uuid.New())))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated is a 401", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/registration/company", id.UserID{}, companyBody("REG-H-5", "h6@acme.example"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegisterIndividualEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newRouter(h)

	body := map[string]any{
		"firstName":           "Ravi",
		"lastName":            "Iyer",
		"email":               "ravi@partners.example",
		"country":             "India",
		"yearsOfExperienceId": 2,
	}

	t.Run("creates the aggregate", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/registration/bd-individual", id.UserID(uuid.New()), body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			Individual struct {
				Email string `json:"email"`
			} `json:"individual"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ravi@partners.example", resp.Individual.Email)
	})

	t.Run("unknown years of experience is a 400", func(t *testing.T) {
		bad := map[string]any{}
		for k, v := range body {
			bad[k] = v
		}
		bad["email"] = "other@partners.example"
		bad["yearsOfExperienceId"] = 999
		rec := doJSON(t, router, http.MethodPost, "/registration/bd-individual", id.UserID(uuid.New()), bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "years of experience")
	})

	t.Run("duplicate email is a 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/registration/bd-individual", id.UserID(uuid.New()), body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRegisterOrganizationEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newRouter(h)

	body := map[string]any{
		"commonDetails": map[string]any{
			"registeredName":     "Meridian Partners LLP",
			"registrationNumber": "REG-O-1",
			"country":            "Singapore",
			"contactName":        "Lena Teo",
			"contactEmail":       "org@meridian.example",
		},
		"businessStructureId": 3,
		"employeeCount":       "11-50",
		"yearsOfExperienceId": 3,
	}

	rec := doJSON(t, router, http.MethodPost, "/registration/bd-org", id.UserID(uuid.New()), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Organization struct {
			EmployeeCount string `json:"employee_count"`
		} `json:"organization"`
		Business struct {
			LegalName string `json:"legal_name"`
		} `json:"business_details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "11-50", resp.Organization.EmployeeCount)
	assert.Equal(t, "Meridian Partners LLP", resp.Business.LegalName)
}

func TestEnsureProfileEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newRouter(h)
	user := id.UserID(uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/registration/profile", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var first struct {
		ID             string `json:"id"`
		Classification string `json:"classification"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, "PENDING", first.Classification)

	rec = doJSON(t, router, http.MethodPost, "/registration/profile", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var second struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID, "repeated signup must return the same profile")
}

func TestStatusEndpoint(t *testing.T) {
	h, registrar := newTestHandler(t)
	router := newRouter(h)
	user := id.UserID(uuid.New())

	t.Run("no profile yet is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/registration/status", user, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("reports the pending profile", func(t *testing.T) {
		_, err := registrar.EnsureProfile(context.Background(), user)
		require.NoError(t, err)

		rec := doJSON(t, router, http.MethodGet, "/registration/status", user, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Classification string `json:"classification"`
			Status         string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PENDING", resp.Classification)
		assert.Equal(t, "DRAFT", resp.Status)
	})
}
