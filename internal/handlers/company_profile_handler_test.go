package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"transfer-backend/internal/models"
)

type fakeProfileService struct {
	GetOneFunc func(ctx context.Context) (*models.CompanyProfile, error)
	UpsertFunc func(ctx context.Context, req *models.UpsertCompanyProfileRequest) (*models.CompanyProfile, error)
}

func (f *fakeProfileService) GetOne(ctx context.Context) (*models.CompanyProfile, error) {
	return f.GetOneFunc(ctx)
}

func (f *fakeProfileService) Upsert(ctx context.Context, req *models.UpsertCompanyProfileRequest) (*models.CompanyProfile, error) {
	return f.UpsertFunc(ctx, req)
}

func profileRouter(svc CompanyProfileService) *mux.Router {
	h := NewCompanyProfileHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/api/company-profile", h.GetProfile).Methods("GET")
	r.HandleFunc("/api/company-profile", h.UpsertProfile).Methods("PUT")
	return r
}

func TestCompanyProfileHandler(t *testing.T) {
	t.Run("Get Unset Profile Returns Null", func(t *testing.T) {
		svc := &fakeProfileService{
			GetOneFunc: func(ctx context.Context) (*models.CompanyProfile, error) {
				return nil, nil
			},
		}
		router := profileRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/company-profile", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null\n", w.Body.String())
	})

	t.Run("Upsert", func(t *testing.T) {
		svc := &fakeProfileService{
			UpsertFunc: func(ctx context.Context, req *models.UpsertCompanyProfileRequest) (*models.CompanyProfile, error) {
				return &models.CompanyProfile{ID: "profile-1", CompanyName: req.CompanyName}, nil
			},
		}
		router := profileRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/company-profile",
			bytes.NewReader([]byte(`{"company_name":"Baisal Travel LLC"}`)))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Baisal Travel LLC")
	})
}
