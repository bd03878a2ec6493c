package applications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/db/memdb"
	"github.com/jonathan/job-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memdb.Store
	svc       *Service
	owner     types.Principal
	candidate types.Principal
	job       *types.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memdb.New()

	owner := &types.User{Email: "owner@example.com", Role: types.RoleRecruiter}
	require.NoError(t, store.CreateUser(ctx, owner))
	cand := &types.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: types.RoleCandidate, Skills: []string{"go"}}
	require.NoError(t, store.CreateUser(ctx, cand))

	job := &types.Job{Title: "Engineer", Description: "d", OwnerID: owner.ID}
	require.NoError(t, store.CreateJob(ctx, job))

	return &fixture{
		store:     store,
		svc:       NewService(store),
		owner:     owner.Principal(),
		candidate: cand.Principal(),
		job:       job,
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with status applied", func(t *testing.T) {
		f := newFixture(t)
		app, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusApplied, app.Status)
		assert.Equal(t, f.candidate.ID, app.CandidateID)
		assert.Equal(t, f.job.ID, app.JobID)
		assert.NotEqual(t, uuid.Nil, app.ID)
	})

	t.Run("second apply conflicts", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
		require.NoError(t, err)

		_, err = f.svc.Apply(ctx, f.candidate, f.job.ID)
		assert.True(t, types.IsConflict(err))

		apps, err := f.svc.ListForCandidate(ctx, f.candidate)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.candidate, uuid.New())
		assert.True(t, types.IsNotFound(err))
	})

	t.Run("recruiters cannot apply", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Apply(ctx, f.owner, f.job.ID)
		assert.True(t, types.IsForbidden(err))
	})
}

func TestApply_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Apply(ctx, f.candidate, f.job.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, types.IsConflict(err), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	n2, err := f.store.CountApplicationsForJob(ctx, f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n2)
}

// blindStore hides existing applications from the pre-check so the insert
// itself has to detect the duplicate.
type blindStore struct {
	*memdb.Store
}

func (blindStore) FindApplication(context.Context, uuid.UUID, uuid.UUID) (*types.Application, error) {
	return nil, nil
}

func TestApply_StoreResolvesRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewService(blindStore{f.store})

	_, err := svc.Apply(ctx, f.candidate, f.job.ID)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, f.candidate, f.job.ID)
	var conflict *types.ErrConflict
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "already applied to this job", conflict.Message)
}

func TestListForJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
	require.NoError(t, err)

	other := &types.User{Email: "bob@example.com", Role: types.RoleCandidate}
	require.NoError(t, f.store.CreateUser(ctx, other))
	second, err := f.svc.Apply(ctx, other.Principal(), f.job.ID)
	require.NoError(t, err)

	applicants, err := f.svc.ListForJob(ctx, f.owner, f.job.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 2)
	assert.Equal(t, first.ID, applicants[0].ID, "oldest first")
	assert.Equal(t, second.ID, applicants[1].ID)
	assert.Equal(t, "Ada Lovelace", applicants[0].Candidate.Name)
	assert.Equal(t, "ada@example.com", applicants[0].Candidate.Email)
	assert.Equal(t, []string{"go"}, applicants[0].Candidate.Skills)

	_, err = f.svc.ListForJob(ctx, types.Principal{ID: uuid.New(), Role: types.RoleRecruiter}, f.job.ID)
	assert.True(t, types.IsForbidden(err))

	_, err = f.svc.ListForJob(ctx, f.candidate, f.job.ID)
	assert.True(t, types.IsForbidden(err))

	_, err = f.svc.ListForJob(ctx, f.owner, uuid.New())
	assert.True(t, types.IsNotFound(err))
}

func TestListForCandidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	later := &types.Job{Title: "Platform Engineer", Description: "d", OwnerID: f.owner.ID, JobType: types.JobTypeContract}
	require.NoError(t, f.store.CreateJob(ctx, later))

	_, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.candidate, later.ID)
	require.NoError(t, err)

	apps, err := f.svc.ListForCandidate(ctx, f.candidate)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, later.ID, apps[0].JobID, "newest first")
	assert.Equal(t, "Platform Engineer", apps[0].Job.Title)
	assert.Equal(t, types.JobTypeContract, apps[0].Job.JobType)
	assert.Equal(t, "Engineer", apps[1].Job.Title)

	empty, err := f.svc.ListForCandidate(ctx, types.Principal{ID: uuid.New(), Role: types.RoleCandidate})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.svc.ListForCandidate(ctx, f.owner)
	assert.True(t, types.IsForbidden(err))
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sets any status in any order", func(t *testing.T) {
		f := newFixture(t)
		app, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
		require.NoError(t, err)

		for _, status := range []types.ApplicationStatus{
			types.StatusShortlisted, types.StatusApplied, types.StatusRejected, types.StatusViewed, types.StatusViewed,
		} {
			got, err := f.svc.SetStatus(ctx, f.owner, app.ID, status)
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)
			assert.Equal(t, f.candidate.ID, got.Candidate.ID)
		}

		stored, err := f.store.GetApplication(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusViewed, stored.Status)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		f := newFixture(t)
		app, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
		require.NoError(t, err)

		stranger := types.Principal{ID: uuid.New(), Role: types.RoleRecruiter}
		_, err = f.svc.SetStatus(ctx, stranger, app.ID, types.StatusShortlisted)
		assert.True(t, types.IsForbidden(err))

		_, err = f.svc.SetStatus(ctx, f.candidate, app.ID, types.StatusShortlisted)
		assert.True(t, types.IsForbidden(err))

		stored, err := f.store.GetApplication(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusApplied, stored.Status)
	})

	t.Run("non-owner forbidden even with bad status", func(t *testing.T) {
		f := newFixture(t)
		app, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
		require.NoError(t, err)

		_, err = f.svc.SetStatus(ctx, types.Principal{ID: uuid.New(), Role: types.RoleRecruiter}, app.ID, "hired")
		assert.True(t, types.IsForbidden(err))
	})

	t.Run("unknown status lists allowed values", func(t *testing.T) {
		f := newFixture(t)
		app, err := f.svc.Apply(ctx, f.candidate, f.job.ID)
		require.NoError(t, err)

		_, err = f.svc.SetStatus(ctx, f.owner, app.ID, "hired")
		var invalid *types.ErrInvalidArgument
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, "status", invalid.Field)
		assert.Equal(t, []string{"applied", "viewed", "shortlisted", "rejected"}, invalid.Allowed)
		assert.Contains(t, err.Error(), "applied, viewed, shortlisted, rejected")
	})

	t.Run("unknown application", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.SetStatus(ctx, f.owner, uuid.New(), types.StatusViewed)
		assert.True(t, types.IsNotFound(err))
	})
}
