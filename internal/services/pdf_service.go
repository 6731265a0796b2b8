package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"transfer-backend/internal/cache"
	"transfer-backend/internal/metrics"
	"transfer-backend/internal/pdf"
)

// PDFService renders invoices to printable documents through the external
// engine. Rendered bytes are cached per invoice revision when Redis is up.
type PDFService struct {
	Invoices *InvoiceService
	Profile  *CompanyProfileService
	Engine   pdf.Engine

	// OutputDir, when set, keeps a copy of each rendered document on disk
	// and records its path on the invoice.
	OutputDir string
}

func NewPDFService(invoices *InvoiceService, profile *CompanyProfileService, engine pdf.Engine, outputDir string) *PDFService {
	return &PDFService{Invoices: invoices, Profile: profile, Engine: engine, OutputDir: outputDir}
}

// GeneratePDF loads the invoice and the company profile, renders the HTML
// document and prints it. Engine failures are not retried.
func (s *PDFService) GeneratePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := s.Invoices.FindOne(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(cache.InvoicePDFKeyFmt, inv.ID, inv.UpdatedAt.Unix())
	if data, ok := cache.GetBytes(ctx, key); ok {
		return data, nil
	}

	profile, err := s.Profile.GetOne(ctx)
	if err != nil {
		return nil, err
	}

	html, err := pdf.RenderHTML(inv, profile)
	if err != nil {
		return nil, err
	}

	data, err := s.Engine.Render(ctx, html)
	if err != nil {
		metrics.PDFRendersTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PDFRendersTotal.WithLabelValues("ok").Inc()

	cache.SetBytes(ctx, key, data, 30*time.Minute)

	if s.OutputDir != "" {
		path := filepath.Join(s.OutputDir, "invoice-"+inv.InvoiceNumber+".pdf")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Printf("[PDF] failed to keep a copy of invoice %s: %v", inv.ID, err)
		} else if inv.PDFPath != path {
			// Record only when the path actually changes, so repeat
			// downloads of the same invoice stay read-only.
			if err := s.Invoices.RecordPDFPath(ctx, inv.ID, path); err != nil {
				log.Printf("[PDF] failed to record path for invoice %s: %v", inv.ID, err)
			}
		}
	}
	return data, nil
}
