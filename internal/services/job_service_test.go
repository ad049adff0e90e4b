package services

import (
	"testing"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobFixture struct {
	svc          *JobServiceImpl
	users        *fakeUserRepo
	companies    *fakeCompanyRepo
	jobs         *fakeJobRepo
	applications *fakeApplicationRepo
	hr           *models.User
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	f := &jobFixture{
		users:        newFakeUserRepo(),
		companies:    newFakeCompanyRepo(),
		jobs:         newFakeJobRepo(),
		applications: newFakeApplicationRepo(),
	}
	f.svc = &JobServiceImpl{
		jobRepo:         f.jobs,
		companyRepo:     f.companies,
		userRepo:        f.users,
		applicationRepo: f.applications,
		runTx:           passthroughTx,
	}
	f.hr = f.users.add(&models.User{
		Email:          "hr@acme.test",
		Role:           models.UserRoleCompanyHR,
		EmailConfirmed: true,
	})
	f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: f.hr.ID})
	return f
}

func validJobRequest() *dto.AddJobRequest {
	return &dto.AddJobRequest{
		JobTitle:        "Backend Developer",
		JobLocation:     models.JobLocationRemotely,
		WorkingTime:     models.WorkingTimeFullTime,
		SeniorityLevel:  models.SeniorityMidLevel,
		JobDescription:  "Build APIs",
		TechnicalSkills: []string{"go", "postgres"},
		SoftSkills:      []string{"communication"},
	}
}

func TestAddJob(t *testing.T) {
	f := newJobFixture(t)

	job, err := f.svc.Add(nil, f.hr.ID, validJobRequest())
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer", job.JobTitle)
	assert.Equal(t, []string{"go", "postgres"}, job.TechnicalSkills)
	assert.Equal(t, f.hr.ID, job.AddedBy)
}

func TestAddJobRequiresCompany(t *testing.T) {
	f := newJobFixture(t)
	lonelyHR := f.users.add(&models.User{
		Email: "nocompany@corp.test",
		Role:  models.UserRoleCompanyHR,
	})

	_, err := f.svc.Add(nil, lonelyHR.ID, validJobRequest())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestAddJobRequiresHRRole(t *testing.T) {
	f := newJobFixture(t)
	user := f.users.add(&models.User{Email: "dev@example.com", Role: models.UserRoleUser})

	_, err := f.svc.Add(nil, user.ID, validJobRequest())
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestUpdateJobOwnerOnly(t *testing.T) {
	f := newJobFixture(t)
	otherHR := f.users.add(&models.User{Email: "other@corp.test", Role: models.UserRoleCompanyHR})
	job := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: f.hr.ID})

	title := "Senior Backend Dev"
	_, err := f.svc.Update(nil, otherHR.ID, job.ID, &dto.UpdateJobRequest{JobTitle: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)

	updated, err := f.svc.Update(nil, f.hr.ID, job.ID, &dto.UpdateJobRequest{JobTitle: &title})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Dev", updated.JobTitle)
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	f := newJobFixture(t)
	applicant := f.users.add(&models.User{Email: "dev@example.com", Role: models.UserRoleUser})
	job := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: f.hr.ID})
	keep := f.jobs.add(&models.Job{JobTitle: "Frontend Dev", AddedBy: f.hr.ID})
	f.applications.add(&models.Application{JobID: job.ID, UserID: applicant.ID})
	kept := f.applications.add(&models.Application{JobID: keep.ID, UserID: applicant.ID})

	require.NoError(t, f.svc.Delete(nil, f.hr.ID, job.ID))

	_, err := f.jobs.FindByID(nil, job.ID)
	assert.Error(t, err)
	// Only the deleted job's applications go with it.
	require.Len(t, f.applications.applications, 1)
	_, err = f.applications.FindByID(nil, kept.ID)
	assert.NoError(t, err)
}

func TestDeleteJobNonOwnerMutatesNothing(t *testing.T) {
	f := newJobFixture(t)
	otherHR := f.users.add(&models.User{Email: "other@corp.test", Role: models.UserRoleCompanyHR})
	applicant := f.users.add(&models.User{Email: "dev@example.com", Role: models.UserRoleUser})
	job := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: f.hr.ID})
	f.applications.add(&models.Application{JobID: job.ID, UserID: applicant.ID})

	err := f.svc.Delete(nil, otherHR.ID, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotJobOwner)

	_, err = f.jobs.FindByID(nil, job.ID)
	assert.NoError(t, err)
	assert.Len(t, f.applications.applications, 1)
}

func TestListAllAttachesCompany(t *testing.T) {
	f := newJobFixture(t)
	f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: f.hr.ID})

	jobs, err := f.svc.ListAll(nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.NotNil(t, jobs[0].Company)
	assert.Equal(t, "Acme", jobs[0].Company.CompanyName)
}

func TestSearchJobsFilters(t *testing.T) {
	f := newJobFixture(t)
	f.jobs.add(&models.Job{
		JobTitle:    "Backend Dev",
		AddedBy:     f.hr.ID,
		WorkingTime: models.WorkingTimeFullTime,
		JobLocation: models.JobLocationRemotely,
	})
	f.jobs.add(&models.Job{
		JobTitle:    "Office Manager",
		AddedBy:     f.hr.ID,
		WorkingTime: models.WorkingTimePartTime,
		JobLocation: models.JobLocationOnsite,
	})

	jobs, err := f.svc.Search(nil, &dto.JobSearchFilter{WorkingTime: models.WorkingTimeFullTime})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Dev", jobs[0].JobTitle)

	jobs, err = f.svc.Search(nil, &dto.JobSearchFilter{JobTitle: "office"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Office Manager", jobs[0].JobTitle)
}

func TestListForCompany(t *testing.T) {
	f := newJobFixture(t)
	company, err := f.companies.FindByHR(nil, f.hr.ID)
	require.NoError(t, err)
	f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: f.hr.ID})

	jobs, err := f.svc.ListForCompany(nil, company.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
