package repositories

import (
	"context"
	"errors"

	"transfer-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyProfileRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyProfileRepository(db *pgxpool.Pool) *CompanyProfileRepository {
	return &CompanyProfileRepository{DB: db}
}

const profileColumns = `id, company_name, COALESCE(address, ''), COALESCE(tax_id, ''),
       COALESCE(website, ''), COALESCE(bank_name, ''), COALESCE(iban, ''),
       COALESCE(swift, ''), COALESCE(notes, '')`

// GetFirst returns the profile row, or nil when none exists yet. The table is
// a singleton by convention only, so "first row by company name" is the read.
func (r *CompanyProfileRepository) GetFirst(ctx context.Context) (*models.CompanyProfile, error) {
	var p models.CompanyProfile
	err := r.DB.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM company_profile ORDER BY company_name ASC LIMIT 1`,
	).Scan(&p.ID, &p.CompanyName, &p.Address, &p.TaxID, &p.Website,
		&p.BankName, &p.IBAN, &p.SWIFT, &p.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *CompanyProfileRepository) Create(ctx context.Context, p *models.CompanyProfile) error {
	p.ID = uuid.NewString()
	_, err := r.DB.Exec(ctx,
		`INSERT INTO company_profile(id, company_name, address, tax_id, website,
		     bank_name, iban, swift, notes)
         VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
             NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))`,
		p.ID, p.CompanyName, p.Address, p.TaxID, p.Website,
		p.BankName, p.IBAN, p.SWIFT, p.Notes)
	return err
}

func (r *CompanyProfileRepository) Update(ctx context.Context, p *models.CompanyProfile) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE company_profile
         SET company_name=$1, address=NULLIF($2, ''), tax_id=NULLIF($3, ''),
             website=NULLIF($4, ''), bank_name=NULLIF($5, ''), iban=NULLIF($6, ''),
             swift=NULLIF($7, ''), notes=NULLIF($8, '')
         WHERE id=$9`,
		p.CompanyName, p.Address, p.TaxID, p.Website, p.BankName,
		p.IBAN, p.SWIFT, p.Notes, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
