package services

import (
	"context"
	"fmt"
	"time"

	"transfer-backend/internal/cache"
	"transfer-backend/internal/models"
)

// ProfileStore is the slice of the storage layer the profile service needs.
type ProfileStore interface {
	GetFirst(ctx context.Context) (*models.CompanyProfile, error)
	Create(ctx context.Context, p *models.CompanyProfile) error
	Update(ctx context.Context, p *models.CompanyProfile) error
}

// CompanyProfileService maintains the payer's own business record. The table
// is a singleton by convention: GetOne reads the first row, Upsert
// finds-or-creates.
type CompanyProfileService struct {
	Repo ProfileStore
}

func NewCompanyProfileService(repo ProfileStore) *CompanyProfileService {
	return &CompanyProfileService{Repo: repo}
}

// GetOne returns the profile, or nil when none has been saved yet.
func (s *CompanyProfileService) GetOne(ctx context.Context) (*models.CompanyProfile, error) {
	var cached models.CompanyProfile
	if cache.GetJSON(ctx, cache.CompanyProfileKey, &cached) {
		return &cached, nil
	}

	profile, err := s.Repo.GetFirst(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		cache.SetJSON(ctx, cache.CompanyProfileKey, profile, 10*time.Minute)
	}
	return profile, nil
}

// Upsert creates the profile when absent and overwrites every field when
// present.
func (s *CompanyProfileService) Upsert(ctx context.Context, req *models.UpsertCompanyProfileRequest) (*models.CompanyProfile, error) {
	if req.CompanyName == "" {
		return nil, fmt.Errorf("%w: company_name is required", models.ErrValidation)
	}

	existing, err := s.Repo.GetFirst(ctx)
	if err != nil {
		return nil, err
	}

	profile := existing
	if profile == nil {
		profile = &models.CompanyProfile{}
	}
	profile.CompanyName = req.CompanyName
	profile.Address = req.Address
	profile.TaxID = req.TaxID
	profile.Website = req.Website
	profile.BankName = req.BankName
	profile.IBAN = req.IBAN
	profile.SWIFT = req.SWIFT
	profile.Notes = req.Notes

	if existing == nil {
		err = s.Repo.Create(ctx, profile)
	} else {
		err = s.Repo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	cache.Delete(ctx, cache.CompanyProfileKey)
	return profile, nil
}
