package services

import (
	"testing"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type companyFixture struct {
	svc          *CompanyServiceImpl
	users        *fakeUserRepo
	companies    *fakeCompanyRepo
	jobs         *fakeJobRepo
	applications *fakeApplicationRepo
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()
	f := &companyFixture{
		users:        newFakeUserRepo(),
		companies:    newFakeCompanyRepo(),
		jobs:         newFakeJobRepo(),
		applications: newFakeApplicationRepo(),
	}
	f.svc = &CompanyServiceImpl{
		companyRepo:     f.companies,
		userRepo:        f.users,
		jobRepo:         f.jobs,
		applicationRepo: f.applications,
		runTx:           passthroughTx,
	}
	return f
}

func (f *companyFixture) seedHR(emailAddr string) *models.User {
	return f.users.add(&models.User{
		FirstName:      "HR",
		LastName:       "Person",
		Email:          emailAddr,
		Role:           models.UserRoleCompanyHR,
		EmailConfirmed: true,
	})
}

func validCompanyRequest() *dto.CreateCompanyRequest {
	return &dto.CreateCompanyRequest{
		CompanyName:       "Acme",
		Description:       "Widgets",
		Industry:          "Manufacturing",
		Address:           "1 Main St",
		NumberOfEmployees: 50,
		CompanyEmail:      "jobs@acme.test",
	}
}

func TestCreateCompany(t *testing.T) {
	f := newCompanyFixture(t)
	hr := f.seedHR("hr@acme.test")

	company, err := f.svc.Create(nil, hr.ID, validCompanyRequest())
	require.NoError(t, err)
	assert.Equal(t, "Acme", company.CompanyName)
	assert.Equal(t, hr.ID, company.CompanyHR)
}

func TestCreateCompanyRequiresHRRole(t *testing.T) {
	f := newCompanyFixture(t)
	user := f.users.add(&models.User{Email: "plain@example.com", Role: models.UserRoleUser})

	_, err := f.svc.Create(nil, user.ID, validCompanyRequest())
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestCreateCompanyOnePerHR(t *testing.T) {
	f := newCompanyFixture(t)
	hr := f.seedHR("hr@acme.test")

	_, err := f.svc.Create(nil, hr.ID, validCompanyRequest())
	require.NoError(t, err)

	second := validCompanyRequest()
	second.CompanyName = "Acme Two"
	second.CompanyEmail = "jobs2@acme.test"
	_, err = f.svc.Create(nil, hr.ID, second)
	assert.ErrorIs(t, err, apperrors.ErrCompanyAlreadyOwned)
}

func TestUpdateCompanyOwnerOnly(t *testing.T) {
	f := newCompanyFixture(t)
	owner := f.seedHR("owner@acme.test")
	intruder := f.seedHR("other@corp.test")
	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: owner.ID})

	name := "Acme Rebranded"
	_, err := f.svc.Update(nil, intruder.ID, company.ID, &dto.UpdateCompanyRequest{CompanyName: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotCompanyOwner)

	updated, err := f.svc.Update(nil, owner.ID, company.ID, &dto.UpdateCompanyRequest{CompanyName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Rebranded", updated.CompanyName)
}

func TestDeleteCompanyCascadesAndDemotes(t *testing.T) {
	f := newCompanyFixture(t)
	hr := f.seedHR("hr@acme.test")
	applicant := f.users.add(&models.User{Email: "dev@example.com", Role: models.UserRoleUser})

	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: hr.ID})
	job1 := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: hr.ID})
	job2 := f.jobs.add(&models.Job{JobTitle: "Frontend Dev", AddedBy: hr.ID})
	f.applications.add(&models.Application{JobID: job1.ID, UserID: applicant.ID})
	f.applications.add(&models.Application{JobID: job2.ID, UserID: applicant.ID})

	require.NoError(t, f.svc.Delete(nil, hr.ID, company.ID))

	assert.Empty(t, f.applications.applications)
	assert.Empty(t, f.jobs.jobs)
	_, err := f.companies.FindByID(nil, company.ID)
	assert.Error(t, err)

	// The owner keeps their account but loses the HR role.
	stored, err := f.users.FindByID(nil, hr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, stored.Role)
}

func TestDeleteCompanyUnauthorizedMutatesNothing(t *testing.T) {
	f := newCompanyFixture(t)
	owner := f.seedHR("owner@acme.test")
	intruder := f.seedHR("other@corp.test")

	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: owner.ID})
	job := f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: owner.ID})

	err := f.svc.Delete(nil, intruder.ID, company.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotCompanyOwner)

	_, err = f.companies.FindByID(nil, company.ID)
	assert.NoError(t, err)
	_, err = f.jobs.FindByID(nil, job.ID)
	assert.NoError(t, err)
	stored, _ := f.users.FindByID(nil, owner.ID)
	assert.Equal(t, models.UserRoleCompanyHR, stored.Role)
}

func TestDeleteCompanyIdempotentChildren(t *testing.T) {
	// A company with no jobs and no applications deletes cleanly: the
	// child bulk deletes are no-ops, not errors.
	f := newCompanyFixture(t)
	hr := f.seedHR("hr@acme.test")
	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: hr.ID})

	require.NoError(t, f.svc.Delete(nil, hr.ID, company.ID))
}

func TestGetCompanyWithJobs(t *testing.T) {
	f := newCompanyFixture(t)
	hr := f.seedHR("hr@acme.test")
	company := f.companies.add(&models.Company{CompanyName: "Acme", CompanyHR: hr.ID})
	f.jobs.add(&models.Job{JobTitle: "Backend Dev", AddedBy: hr.ID})
	f.jobs.add(&models.Job{JobTitle: "Frontend Dev", AddedBy: hr.ID})

	resp, err := f.svc.GetWithJobs(nil, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.Company.CompanyName)
	assert.Len(t, resp.Jobs, 2)
}

func TestSearchCompaniesByName(t *testing.T) {
	f := newCompanyFixture(t)
	hr := f.seedHR("hr@acme.test")
	f.companies.add(&models.Company{CompanyName: "Acme Robotics", CompanyHR: hr.ID})
	f.companies.add(&models.Company{CompanyName: "Globex", CompanyHR: hr.ID})

	results, err := f.svc.SearchByName(nil, "acme")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Acme Robotics", results[0].CompanyName)
}
