package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/repositories"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/filestorage"
	"github.com/pastoral/providencia/internal/pkg/helpers"
)

// Image upload kinds
const (
	ImageKindLogo    = "logo"
	ImageKindGallery = "gallery"
)

// companyStore is the slice of CompanyRepository the service needs
type companyStore interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	FindByPersonID(ctx context.Context, personID int64) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	UpdateLogo(ctx context.Context, id int64, logoURL *string) error
	UpdateGallery(ctx context.Context, id int64, gallery []string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repositories.CompanyFilter) ([]*repositories.CompanyWithOwner, int64, error)
}

// ownerGetter resolves company owners
type ownerGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Person, error)
}

// CompanyService handles the company directory
type CompanyService struct {
	companyRepo companyStore
	personRepo  ownerGetter
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(
	companyRepo companyStore,
	personRepo ownerGetter,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		personRepo:  personRepo,
		storage:     storage,
		logger:      logger,
	}
}

func toCompanyResponse(c *models.Company, ownerName string) dto.CompanyResponse {
	gallery := c.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Segment:     c.Segment,
		City:        c.City,
		Phone:       c.Phone,
		Whatsapp:    c.Whatsapp,
		Email:       c.Email,
		Website:     c.Website,
		Instagram:   c.Instagram,
		OwnerID:     c.PersonID,
		OwnerName:   ownerName,
		LogoURL:     helpers.StringOrEmpty(c.LogoURL),
		Gallery:     gallery,
		CreatedAt:   c.CreatedAt,
	}
}

func (s *CompanyService) applyRequest(c *models.Company, name, description, segment, city, phoneNum, whatsapp, email, website, instagram string, personID *int64) {
	c.Name = strings.TrimSpace(name)
	c.Description = strings.TrimSpace(description)
	c.Segment = strings.TrimSpace(segment)
	c.City = strings.TrimSpace(city)
	c.Phone = strings.TrimSpace(phoneNum)
	c.Whatsapp = strings.TrimSpace(whatsapp)
	c.Email = strings.TrimSpace(email)
	c.Website = strings.TrimSpace(website)
	c.Instagram = strings.TrimSpace(instagram)
	c.PersonID = personID
}

// Create handles creating a company record
func (s *CompanyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if req.PersonID != nil {
		if _, err := s.personRepo.GetByID(ctx, *req.PersonID); err != nil {
			return nil, err
		}
	}

	company := &models.Company{}
	s.applyRequest(company, req.Name, req.Description, req.Segment, req.City,
		req.Phone, req.Whatsapp, req.Email, req.Website, req.Instagram, req.PersonID)

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("companyID", company.ID).Str("name", company.Name).Msg("Company created")

	resp := toCompanyResponse(company, "")
	return &resp, nil
}

// GetByID retrieves a single company
func (s *CompanyService) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerName := ""
	if company.PersonID != nil {
		if owner, err := s.personRepo.GetByID(ctx, *company.PersonID); err == nil {
			ownerName = owner.Name
		}
	}

	resp := toCompanyResponse(company, ownerName)
	return &resp, nil
}

// Update handles updating a company record
func (s *CompanyService) Update(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PersonID != nil {
		if _, err := s.personRepo.GetByID(ctx, *req.PersonID); err != nil {
			return nil, err
		}
	}

	s.applyRequest(company, req.Name, req.Description, req.Segment, req.City,
		req.Phone, req.Whatsapp, req.Email, req.Website, req.Instagram, req.PersonID)

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	resp := toCompanyResponse(company, "")
	return &resp, nil
}

// Delete removes a company. The database row goes first; stored images
// are cleaned up best effort so a storage failure never blocks deletion.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteAll(s.imagePath(id)); err != nil {
		s.logger.Warn().Err(err).Int64("companyID", id).Msg("Failed to remove company images from storage")
	}

	s.logger.Info().Int64("companyID", id).Msg("Company deleted")
	return nil
}

// List retrieves the company directory with filters
func (s *CompanyService) List(ctx context.Context, req *dto.CompanyFilterRequest) (*dto.CompanyListResponse, error) {
	filter := repositories.CompanyFilter{
		Segment:  strings.TrimSpace(req.Segment),
		City:     strings.TrimSpace(req.City),
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	companies, total, err := s.companyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.CompanyListResponse{
		Companies: make([]dto.CompanyResponse, 0, len(companies)),
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.PageSize < 1 {
		resp.PageSize = 20
	}
	for _, c := range companies {
		resp.Companies = append(resp.Companies, toCompanyResponse(&c.Company, helpers.StringOrEmpty(c.OwnerName)))
	}

	return resp, nil
}

// UploadImage stores a logo or gallery image for a company. A new logo
// replaces the old file; the gallery holds at most MaxGalleryImages.
func (s *CompanyService) UploadImage(ctx context.Context, id int64, kind string, file *multipart.FileHeader) (*dto.CompanyImageResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ImageKindLogo:
		return s.uploadLogo(ctx, company, file)
	case ImageKindGallery:
		return s.uploadGalleryImage(ctx, company, file)
	default:
		return nil, apperrors.ErrUnknownImageKind
	}
}

func (s *CompanyService) uploadLogo(ctx context.Context, company *models.Company, file *multipart.FileHeader) (*dto.CompanyImageResponse, error) {
	if company.LogoURL != nil {
		if err := s.storage.DeleteFile(*company.LogoURL); err != nil {
			s.logger.Warn().Err(err).Int64("companyID", company.ID).Msg("Failed to remove old logo from storage")
		}
	}

	url, err := s.storage.SaveFileWithPath(file, s.imagePath(company.ID))
	if err != nil {
		return nil, fmt.Errorf("error saving logo: %w", err)
	}

	if err := s.companyRepo.UpdateLogo(ctx, company.ID, &url); err != nil {
		return nil, err
	}

	return &dto.CompanyImageResponse{
		Kind:    ImageKindLogo,
		LogoURL: url,
		Gallery: company.Gallery,
	}, nil
}

func (s *CompanyService) uploadGalleryImage(ctx context.Context, company *models.Company, file *multipart.FileHeader) (*dto.CompanyImageResponse, error) {
	if len(company.Gallery) >= models.MaxGalleryImages {
		return nil, apperrors.ErrGalleryFull
	}

	url, err := s.storage.SaveFileWithPath(file, s.imagePath(company.ID))
	if err != nil {
		return nil, fmt.Errorf("error saving gallery image: %w", err)
	}

	gallery := append(company.Gallery, url)
	if err := s.companyRepo.UpdateGallery(ctx, company.ID, gallery); err != nil {
		return nil, err
	}

	return &dto.CompanyImageResponse{
		Kind:    ImageKindGallery,
		LogoURL: helpers.StringOrEmpty(company.LogoURL),
		Gallery: gallery,
	}, nil
}

// DeleteImage removes a logo or gallery image by URL
func (s *CompanyService) DeleteImage(ctx context.Context, id int64, imageURL string) (*dto.CompanyImageResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kind := ImageKindGallery
	if company.LogoURL != nil && *company.LogoURL == imageURL {
		kind = ImageKindLogo
		if err := s.companyRepo.UpdateLogo(ctx, id, nil); err != nil {
			return nil, err
		}
		company.LogoURL = nil
	} else {
		gallery := make([]string, 0, len(company.Gallery))
		found := false
		for _, img := range company.Gallery {
			if img == imageURL {
				found = true
				continue
			}
			gallery = append(gallery, img)
		}
		if !found {
			return nil, apperrors.ErrResourceNotFound
		}
		if err := s.companyRepo.UpdateGallery(ctx, id, gallery); err != nil {
			return nil, err
		}
		company.Gallery = gallery
	}

	if err := s.storage.DeleteFile(imageURL); err != nil {
		s.logger.Warn().Err(err).Int64("companyID", id).Msg("Failed to remove image from storage")
	}

	return &dto.CompanyImageResponse{
		Kind:    kind,
		LogoURL: helpers.StringOrEmpty(company.LogoURL),
		Gallery: company.Gallery,
	}, nil
}

func (s *CompanyService) imagePath(companyID int64) string {
	return fmt.Sprintf("companies/%d", companyID)
}
