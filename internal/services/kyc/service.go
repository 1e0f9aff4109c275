// Package kyc wraps the gateway's know-your-customer endpoints.
package kyc

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/afrikabal/gateway-go/internal/gateway"
	"github.com/afrikabal/gateway-go/pkg/apierr"
)

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

// Record is one KYC submission.
type Record struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	DocumentType string    `json:"document_type"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// RecordPayload carries a new or updated KYC submission.
type RecordPayload struct {
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	DocumentType string `json:"document_type"`
	DocumentID   string `json:"document_id"`
}

// List returns every KYC record visible to the caller.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, "/kyc-information", &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var records []Record
	if err := env.Decode(&records); err != nil {
		return nil, apierr.FromErr(err)
	}
	return records, nil
}

// Get fetches one KYC record by ID.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, fmt.Sprintf("/kyc-information/%s", id), &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var record Record
	if err := env.Decode(&record); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &record, nil
}

// Create submits a new KYC record.
func (s *Service) Create(ctx context.Context, payload RecordPayload) (*Record, error) {
	var env gateway.Envelope
	if err := s.client.Post(ctx, "/kyc-information", payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var record Record
	if err := env.Decode(&record); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &record, nil
}

// Update patches an existing KYC record.
func (s *Service) Update(ctx context.Context, id string, payload RecordPayload) (*Record, error) {
	var env gateway.Envelope
	if err := s.client.Patch(ctx, fmt.Sprintf("/kyc-information/%s", id), payload, &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var record Record
	if err := env.Decode(&record); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &record, nil
}

// Delete removes a KYC record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/kyc-information/%s", id), nil); err != nil {
		return apierr.FromErr(err)
	}
	return nil
}

// Document is one file attached to a KYC submission.
type Document struct {
	Field    string
	Filename string
	Content  io.Reader
}

// UploadDocuments attaches supporting documents to the submission keyed by
// the given email address.
func (s *Service) UploadDocuments(ctx context.Context, email string, documents []Document) error {
	path := fmt.Sprintf("/kyc-information/upload-documents?email=%s", url.QueryEscape(email))

	err := s.client.PostMultipart(ctx, path, func(mw *multipart.Writer) error {
		for _, doc := range documents {
			part, err := mw.CreateFormFile(doc.Field, doc.Filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, doc.Content); err != nil {
				return err
			}
		}
		return nil
	}, nil)
	if err != nil {
		return apierr.FromErr(err)
	}
	return nil
}
