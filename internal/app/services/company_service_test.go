package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/repositories"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
)

type fakeCompanyStore struct {
	companies map[int64]*models.Company
	deleted   []int64
}

func newFakeCompanyStore(companies ...*models.Company) *fakeCompanyStore {
	store := &fakeCompanyStore{companies: make(map[int64]*models.Company)}
	for _, c := range companies {
		store.companies[c.ID] = c
	}
	return store
}

func (f *fakeCompanyStore) Create(ctx context.Context, company *models.Company) error {
	company.ID = int64(len(f.companies) + 1)
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyStore) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (f *fakeCompanyStore) FindByPersonID(ctx context.Context, personID int64) (*models.Company, error) {
	for _, c := range f.companies {
		if c.PersonID != nil && *c.PersonID == personID {
			return c, nil
		}
	}
	return nil, apperrors.ErrNoLinkedCompany
}

func (f *fakeCompanyStore) Update(ctx context.Context, company *models.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return apperrors.ErrCompanyNotFound
	}
	f.companies[company.ID] = company
	return nil
}

func (f *fakeCompanyStore) UpdateLogo(ctx context.Context, id int64, logoURL *string) error {
	c, ok := f.companies[id]
	if !ok {
		return apperrors.ErrCompanyNotFound
	}
	c.LogoURL = logoURL
	return nil
}

func (f *fakeCompanyStore) UpdateGallery(ctx context.Context, id int64, gallery []string) error {
	c, ok := f.companies[id]
	if !ok {
		return apperrors.ErrCompanyNotFound
	}
	c.Gallery = gallery
	return nil
}

func (f *fakeCompanyStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.companies[id]; !ok {
		return apperrors.ErrCompanyNotFound
	}
	delete(f.companies, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCompanyStore) List(ctx context.Context, filter repositories.CompanyFilter) ([]*repositories.CompanyWithOwner, int64, error) {
	var out []*repositories.CompanyWithOwner
	for _, c := range f.companies {
		out = append(out, &repositories.CompanyWithOwner{Company: *c})
	}
	return out, int64(len(out)), nil
}

type fakeOwnerGetter struct {
	people map[int64]*models.Person
}

func (f *fakeOwnerGetter) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	if p, ok := f.people[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPersonNotFound
}

type fakeStorage struct {
	saved      []string
	deleted    []string
	deletedAll []string
	saveErr    error
	deleteErr  error
}

func (f *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	url := "http://localhost:8080/uploads/" + subPath + "/" + fileHeader.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(fileURL string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeStorage) DeleteAll(subPath string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedAll = append(f.deletedAll, subPath)
	return nil
}

func newCompanyFixture(companies ...*models.Company) (*CompanyService, *fakeCompanyStore, *fakeStorage) {
	store := newFakeCompanyStore(companies...)
	storage := &fakeStorage{}
	people := &fakeOwnerGetter{people: map[int64]*models.Person{
		5: {ID: 5, Name: "João Lima", Phone: "41988887777"},
	}}
	return NewCompanyService(store, people, storage, zerolog.Nop()), store, storage
}

func TestCompanyDeleteRemovesRowAndImages(t *testing.T) {
	svc, store, storage := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa"})

	err := svc.Delete(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, store.deleted)
	assert.Equal(t, []string{"companies/10"}, storage.deletedAll)
}

// A storage failure must never block deletion: the row goes first and the
// cleanup error is only logged.
func TestCompanyDeleteToleratesStorageFailure(t *testing.T) {
	svc, store, storage := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa"})
	storage.deleteErr = errors.New("disk unavailable")

	err := svc.Delete(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, store.deleted)
}

func TestCompanyDeleteUnknownID(t *testing.T) {
	svc, _, _ := newCompanyFixture()

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}

func TestUploadGalleryImageRespectsCap(t *testing.T) {
	full := make([]string, models.MaxGalleryImages)
	for i := range full {
		full[i] = "http://localhost:8080/uploads/companies/10/img.jpg"
	}
	svc, _, storage := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa", Gallery: full})

	_, err := svc.UploadImage(context.Background(), 10, ImageKindGallery, &multipart.FileHeader{Filename: "extra.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrGalleryFull)
	assert.Empty(t, storage.saved)
}

func TestUploadImageUnknownKind(t *testing.T) {
	svc, _, _ := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa"})

	_, err := svc.UploadImage(context.Background(), 10, "banner", &multipart.FileHeader{Filename: "b.jpg"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownImageKind)
}

func TestUploadLogoReplacesExisting(t *testing.T) {
	oldLogo := "http://localhost:8080/uploads/companies/10/old.jpg"
	svc, store, storage := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa", LogoURL: &oldLogo})

	resp, err := svc.UploadImage(context.Background(), 10, ImageKindLogo, &multipart.FileHeader{Filename: "new.jpg"})
	require.NoError(t, err)

	assert.Equal(t, []string{oldLogo}, storage.deleted)
	require.NotNil(t, store.companies[10].LogoURL)
	assert.Equal(t, resp.LogoURL, *store.companies[10].LogoURL)
}

func TestDeleteImageFromGallery(t *testing.T) {
	target := "http://localhost:8080/uploads/companies/10/a.jpg"
	keep := "http://localhost:8080/uploads/companies/10/b.jpg"
	svc, store, storage := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa", Gallery: []string{target, keep}})

	resp, err := svc.DeleteImage(context.Background(), 10, target)
	require.NoError(t, err)

	assert.Equal(t, ImageKindGallery, resp.Kind)
	assert.Equal(t, []string{keep}, resp.Gallery)
	assert.Equal(t, []string{keep}, store.companies[10].Gallery)
	assert.Equal(t, []string{target}, storage.deleted)
}

func TestDeleteImageLogo(t *testing.T) {
	logo := "http://localhost:8080/uploads/companies/10/logo.jpg"
	svc, store, storage := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa", LogoURL: &logo})

	resp, err := svc.DeleteImage(context.Background(), 10, logo)
	require.NoError(t, err)

	assert.Equal(t, ImageKindLogo, resp.Kind)
	assert.Empty(t, resp.LogoURL)
	assert.Nil(t, store.companies[10].LogoURL)
	assert.Equal(t, []string{logo}, storage.deleted)
}

func TestDeleteImageUnknownURL(t *testing.T) {
	svc, _, _ := newCompanyFixture(&models.Company{ID: 10, Name: "Padaria Boa", Gallery: []string{}})

	_, err := svc.DeleteImage(context.Background(), 10, "http://localhost:8080/uploads/companies/10/nope.jpg")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateCompanyValidatesOwner(t *testing.T) {
	svc, _, _ := newCompanyFixture()
	badOwner := int64(404)

	_, err := svc.Create(context.Background(), &dto.CreateCompanyRequest{Name: "Nova", PersonID: &badOwner})
	assert.ErrorIs(t, err, apperrors.ErrPersonNotFound)

	goodOwner := int64(5)
	resp, err := svc.Create(context.Background(), &dto.CreateCompanyRequest{Name: "Nova", PersonID: &goodOwner})
	require.NoError(t, err)
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, goodOwner, *resp.OwnerID)
}
