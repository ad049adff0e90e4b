package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory resume store.
type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *memStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *memStorage) GetURL(_ context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (s *memStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "/signed/" + path, nil
}

func (s *memStorage) GetSize(_ context.Context, path string) (int64, error) {
	return int64(len(s.files[path])), nil
}

type applicationFixture struct {
	svc          *ApplicationServiceImpl
	users        *fakeUserRepo
	companies    *fakeCompanyRepo
	jobs         *fakeJobRepo
	applications *fakeApplicationRepo
	store        *memStorage
	hr           *models.User
	applicant    *models.User
	job          *models.Job
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	f := &applicationFixture{
		users:        newFakeUserRepo(),
		companies:    newFakeCompanyRepo(),
		jobs:         newFakeJobRepo(),
		applications: newFakeApplicationRepo(),
		store:        newMemStorage(),
	}
	f.svc = &ApplicationServiceImpl{
		applicationRepo: f.applications,
		jobRepo:         f.jobs,
		companyRepo:     f.companies,
		userRepo:        f.users,
		storage:         f.store,
	}
	f.hr = f.users.add(&models.User{Email: "hr@acme.test", Role: models.UserRoleCompanyHR})
	f.applicant = f.users.add(&models.User{Email: "dev@example.com", Role: models.UserRoleUser})
	f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: f.hr.ID})
	f.job = f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: f.hr.ID})
	return f
}

// resumeFile builds a *multipart.FileHeader the way gin would hand it over.
func resumeFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["resume"][0]
}

func validApplyRequest() *dto.ApplyRequest {
	return &dto.ApplyRequest{
		UserTechSkills: []string{"go"},
		UserSoftSkills: []string{"teamwork"},
	}
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 fake resume content")
}

func TestApplyStoresResumeAndApplication(t *testing.T) {
	f := newApplicationFixture(t)
	resume := resumeFile(t, "cv.pdf", "application/pdf", pdfContent())

	application, err := f.svc.Apply(context.Background(), nil, f.applicant.ID, f.job.ID, validApplyRequest(), resume)
	require.NoError(t, err)

	assert.Equal(t, f.job.ID, application.JobID)
	assert.Equal(t, f.applicant.ID, application.UserID)
	assert.NotEmpty(t, application.UserResume)

	stored, ok := f.store.files[application.UserResume]
	require.True(t, ok)
	assert.Equal(t, pdfContent(), stored)
}

func TestApplyRejectsNonPDF(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), nil, f.applicant.ID, f.job.ID,
		validApplyRequest(), resumeFile(t, "cv.docx", "application/msword", []byte("not a pdf")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	// Renaming a non-PDF is caught by the header sniff.
	_, err = f.svc.Apply(context.Background(), nil, f.applicant.ID, f.job.ID,
		validApplyRequest(), resumeFile(t, "cv.pdf", "application/pdf", []byte("plain text")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	assert.Empty(t, f.store.files)
	assert.Empty(t, f.applications.applications)
}

func TestApplyRejectsHRAccounts(t *testing.T) {
	f := newApplicationFixture(t)
	resume := resumeFile(t, "cv.pdf", "application/pdf", pdfContent())

	_, err := f.svc.Apply(context.Background(), nil, f.hr.ID, f.job.ID, validApplyRequest(), resume)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestApplyOncePerJob(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), nil, f.applicant.ID, f.job.ID,
		validApplyRequest(), resumeFile(t, "cv.pdf", "application/pdf", pdfContent()))
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), nil, f.applicant.ID, f.job.ID,
		validApplyRequest(), resumeFile(t, "cv.pdf", "application/pdf", pdfContent()))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestListForCompanyOnDay(t *testing.T) {
	f := newApplicationFixture(t)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	onDay := f.applications.add(&models.Application{JobID: f.job.ID, UserID: f.applicant.ID})
	onDay.CreatedAt = day.Add(10 * time.Hour)

	offDay := f.applications.add(&models.Application{JobID: f.job.ID, UserID: f.hr.ID})
	offDay.CreatedAt = day.Add(30 * time.Hour)

	company, err := f.companies.FindByHR(nil, f.hr.ID)
	require.NoError(t, err)

	resp, err := f.svc.ListForCompanyOnDay(nil, f.hr.ID, company.ID, day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", resp.Date)
	require.Equal(t, 1, resp.Total)
	require.NotNil(t, resp.Applications[0].Applicant)
	assert.Equal(t, f.applicant.ID, resp.Applications[0].UserID)
}

func TestListForCompanyOnDayOwnerOnly(t *testing.T) {
	f := newApplicationFixture(t)
	otherHR := f.users.add(&models.User{Email: "other@corp.test", Role: models.UserRoleCompanyHR})

	company, err := f.companies.FindByHR(nil, f.hr.ID)
	require.NoError(t, err)

	_, err = f.svc.ListForCompanyOnDay(nil, otherHR.ID, company.ID, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotCompanyOwner)
}

func TestResumeURLAccessControl(t *testing.T) {
	f := newApplicationFixture(t)
	stranger := f.users.add(&models.User{Email: "stranger@example.com", Role: models.UserRoleUser})

	application := f.applications.add(&models.Application{
		JobID:      f.job.ID,
		UserID:     f.applicant.ID,
		UserResume: "resumes/x/cv.pdf",
	})

	// The applicant and the job owner may fetch the link.
	url, err := f.svc.ResumeURL(context.Background(), nil, f.applicant.ID, application.ID)
	require.NoError(t, err)
	assert.Equal(t, "/signed/resumes/x/cv.pdf", url)

	_, err = f.svc.ResumeURL(context.Background(), nil, f.hr.ID, application.ID)
	require.NoError(t, err)

	// Anyone else cannot.
	_, err = f.svc.ResumeURL(context.Background(), nil, stranger.ID, application.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
