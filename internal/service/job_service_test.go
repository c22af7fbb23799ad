package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/service"
	"github.com/spec-kit/career-compass/internal/testutil"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

func strp(s string) *string { return &s }

func TestCreateJobDerivesLogo(t *testing.T) {
	svc := service.NewJobService(testutil.NewJobRepo())

	job, err := svc.Create(context.Background(), "user-1", service.JobCreateInput{
		Company: "Acme",
		Title:   "Go Developer",
		URL:     strp("https://careers.acme.io/jobs/1"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusSaved, job.Status)
	assert.Nil(t, job.AppliedAt)
	require.NotNil(t, job.LogoURL)
	assert.Equal(t, "https://logo.clearbit.com/careers.acme.io", *job.LogoURL)
}

func TestCreateJobRejectsUnknownStatus(t *testing.T) {
	svc := service.NewJobService(testutil.NewJobRepo())

	_, err := svc.Create(context.Background(), "user-1", service.JobCreateInput{
		Company: "Acme",
		Title:   "Go Developer",
		Status:  domain.JobStatus("DREAMING"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)
}

func TestUpdateJobStampsAppliedAt(t *testing.T) {
	svc := service.NewJobService(testutil.NewJobRepo())
	ctx := context.Background()

	job, err := svc.Create(ctx, "user-1", service.JobCreateInput{Company: "Acme", Title: "Go Developer"})
	require.NoError(t, err)
	require.Nil(t, job.AppliedAt)

	applied := domain.JobStatusApplied
	updated, err := svc.Update(ctx, "user-1", job.ID, service.JobUpdateInput{Status: &applied})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusApplied, updated.Status)
	require.NotNil(t, updated.AppliedAt)

	// Moving further along the pipeline keeps the original timestamp.
	interviewing := domain.JobStatusInterviewing
	again, err := svc.Update(ctx, "user-1", job.ID, service.JobUpdateInput{Status: &interviewing})
	require.NoError(t, err)
	assert.Equal(t, updated.AppliedAt.Unix(), again.AppliedAt.Unix())
}

func TestJobOwnershipIsolation(t *testing.T) {
	svc := service.NewJobService(testutil.NewJobRepo())
	ctx := context.Background()

	job, err := svc.Create(ctx, "user-1", service.JobCreateInput{Company: "Acme", Title: "Go Developer"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-2", job.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.ToDomainError(err).Code)

	err = svc.Delete(ctx, "user-2", job.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.ToDomainError(err).Code)

	// Owner still sees it.
	_, err = svc.Get(ctx, "user-1", job.ID)
	assert.NoError(t, err)
}

func TestListJobsFiltersByStatus(t *testing.T) {
	svc := service.NewJobService(testutil.NewJobRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", service.JobCreateInput{Company: "Acme", Title: "Dev"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", service.JobCreateInput{Company: "Globex", Title: "SRE", Status: domain.JobStatusApplied})
	require.NoError(t, err)

	applied, err := svc.List(ctx, "user-1", []domain.JobStatus{domain.JobStatusApplied}, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "Globex", applied[0].Company)

	all, err := svc.List(ctx, "user-1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
