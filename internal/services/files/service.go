// Package files wraps the gateway's file storage endpoints. Uploads go out
// as multipart forms; views come back as raw bytes.
package files

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

// FileInfo describes one stored file.
type FileInfo struct {
	Filename   string    `json:"filename"`
	Category   string    `json:"category"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadFile stores a file under the given category.
func (s *Service) UploadFile(ctx context.Context, category, filename string, file io.Reader) (*FileInfo, error) {
	path := fmt.Sprintf("/files/upload/%s", url.PathEscape(category))

	var env gateway.Envelope
	err := s.client.PostMultipart(ctx, path, func(mw *multipart.Writer) error {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, file)
		return err
	}, &env)
	if err != nil {
		return nil, apierr.FromErr(err)
	}

	var info FileInfo
	if err := env.Decode(&info); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &info, nil
}

// RetrieveFile fetches a stored file's metadata by filename.
func (s *Service) RetrieveFile(ctx context.Context, filename string) (*FileInfo, error) {
	path := fmt.Sprintf("/files/retrieve/%s", url.PathEscape(filename))

	var env gateway.Envelope
	if err := s.client.Get(ctx, path, &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var info FileInfo
	if err := env.Decode(&info); err != nil {
		return nil, apierr.FromErr(err)
	}
	return &info, nil
}

// ViewFile returns a file's raw contents.
func (s *Service) ViewFile(ctx context.Context, category, filename string) ([]byte, error) {
	path := fmt.Sprintf("/files/view/%s/%s", url.PathEscape(category), url.PathEscape(filename))

	data, err := s.client.GetBytes(ctx, path)
	if err != nil {
		return nil, apierr.FromErr(err)
	}
	return data, nil
}

// ListUserFiles lists the calling user's files.
func (s *Service) ListUserFiles(ctx context.Context) ([]FileInfo, error) {
	return s.list(ctx, "/files/user-files")
}

// ListFilesByCategory lists all files in one category.
func (s *Service) ListFilesByCategory(ctx context.Context, category string) ([]FileInfo, error) {
	return s.list(ctx, fmt.Sprintf("/files/list/%s", url.PathEscape(category)))
}

// ListAllFiles lists every stored file.
func (s *Service) ListAllFiles(ctx context.Context) ([]FileInfo, error) {
	return s.list(ctx, "/files/list-all")
}

func (s *Service) list(ctx context.Context, path string) ([]FileInfo, error) {
	var env gateway.Envelope
	if err := s.client.Get(ctx, path, &env); err != nil {
		return nil, apierr.FromErr(err)
	}

	var infos []FileInfo
	if err := env.Decode(&infos); err != nil {
		return nil, apierr.FromErr(err)
	}
	return infos, nil
}
