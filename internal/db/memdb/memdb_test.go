package memdb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(t *testing.T, s *Store, owner uuid.UUID, title string, kws ...string) *types.Job {
	t.Helper()
	j := &types.Job{Title: title, Description: "d", SalaryCurrency: types.DefaultSalaryCurrency, OwnerID: owner, Keywords: kws}
	require.NoError(t, s.CreateJob(context.Background(), j))
	return j
}

func TestStore_Users(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &types.User{Email: "a@example.com", PasswordHash: "h", Role: types.RoleCandidate}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, []string{}, u.Skills)

	exists, err := s.CheckEmailExists(ctx, "A@EXAMPLE.COM")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.True(t, types.IsConflict(s.CreateUser(ctx, &types.User{Email: "a@example.com"})))

	require.NoError(t, s.UpdateUserSkills(ctx, u.ID, []string{"go"}))
	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, got.Skills)

	// Returned values are copies
	got.Skills[0] = "mutated"
	again, _ := s.GetUser(ctx, u.ID)
	assert.Equal(t, []string{"go"}, again.Skills)

	missing, err := s.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.True(t, types.IsNotFound(s.UpdateUserSkills(ctx, uuid.New(), nil)))
}

func TestStore_Jobs(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := uuid.New()

	a := newJob(t, s, owner, "Go Developer", "go", "sql")
	b := newJob(t, s, owner, "Java Developer", "java")
	c := newJob(t, s, uuid.New(), "Data Engineer", "sql")

	t.Run("update keeps keywords and owner", func(t *testing.T) {
		updated, err := s.UpdateJob(ctx, a.ID, func(j *types.Job) error {
			j.Title = "Senior Go Developer"
			j.Keywords = []string{"ignored"}
			j.OwnerID = uuid.New()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Senior Go Developer", updated.Title)

		got, err := s.GetJob(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Senior Go Developer", got.Title)
		assert.Equal(t, []string{"go", "sql"}, got.Keywords)
		assert.Equal(t, owner, got.OwnerID)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("failed mutate writes nothing", func(t *testing.T) {
		_, err := s.UpdateJob(ctx, a.ID, func(j *types.Job) error {
			j.Title = "discarded"
			return &types.ErrInvalidArgument{Field: "salary_max", Message: "too low"}
		})
		assert.True(t, types.IsInvalidArgument(err))

		got, err := s.GetJob(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Senior Go Developer", got.Title)

		_, err = s.UpdateJob(ctx, uuid.New(), func(*types.Job) error { return nil })
		assert.True(t, types.IsNotFound(err))
	})

	t.Run("keywords follow the current description", func(t *testing.T) {
		applied, err := s.SetJobKeywords(ctx, c.ID, "stale", []string{"stale"})
		require.NoError(t, err)
		assert.False(t, applied)

		applied, err = s.SetJobKeywords(ctx, uuid.New(), "d", []string{"x"})
		require.NoError(t, err)
		assert.False(t, applied)

		got, err := s.GetJob(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"sql"}, got.Keywords)
	})

	t.Run("search", func(t *testing.T) {
		jobs, err := s.SearchJobs(ctx, []string{"sql"})
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, c.ID, jobs[0].ID, "newest first")
		assert.Equal(t, a.ID, jobs[1].ID)

		jobs, err = s.SearchJobs(ctx, []string{"java dev"})
		require.NoError(t, err)
		require.Len(t, jobs, 1, "title substring")
		assert.Equal(t, b.ID, jobs[0].ID)

		jobs, err = s.SearchJobs(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, jobs, 3)
	})

	t.Run("by owner", func(t *testing.T) {
		jobs, err := s.ListJobsByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, b.ID, jobs[0].ID)
	})

	t.Run("sharing keywords", func(t *testing.T) {
		jobs, err := s.ListJobsSharingKeywords(ctx, []string{"sql", "go"}, a.ID, 5)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, c.ID, jobs[0].ID)

		jobs, err = s.ListJobsSharingKeywords(ctx, []string{"sql", "java"}, uuid.Nil, 2)
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteJob(ctx, b.ID))
		got, err := s.GetJob(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.True(t, types.IsNotFound(s.DeleteJob(ctx, b.ID)))
	})
}

func TestStore_Applications(t *testing.T) {
	s := New()
	ctx := context.Background()

	cand := &types.User{FirstName: "Ravi", Email: "ravi@example.com", Role: types.RoleCandidate, Skills: []string{"go"}}
	require.NoError(t, s.CreateUser(ctx, cand))
	job := newJob(t, s, uuid.New(), "Go Developer", "go")
	second := newJob(t, s, uuid.New(), "SRE", "k8s")

	app := &types.Application{CandidateID: cand.ID, JobID: job.ID, Status: types.StatusRejected}
	require.NoError(t, s.CreateApplication(ctx, app))
	assert.Equal(t, types.StatusApplied, app.Status, "new applications always start as applied")

	assert.True(t, types.IsConflict(s.CreateApplication(ctx, &types.Application{CandidateID: cand.ID, JobID: job.ID})))
	assert.True(t, types.IsNotFound(s.CreateApplication(ctx, &types.Application{CandidateID: cand.ID, JobID: uuid.New()})))
	var missing *types.ErrNotFound
	require.ErrorAs(t, s.CreateApplication(ctx, &types.Application{CandidateID: uuid.New(), JobID: job.ID}), &missing)
	assert.Equal(t, "user", missing.Resource)
	require.NoError(t, s.CreateApplication(ctx, &types.Application{CandidateID: cand.ID, JobID: second.ID}))

	found, err := s.FindApplication(ctx, cand.ID, job.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, app.ID, found.ID)

	require.NoError(t, s.UpdateApplicationStatus(ctx, app.ID, types.StatusViewed))
	applicant, err := s.GetApplicant(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, applicant)
	assert.Equal(t, types.StatusViewed, applicant.Status)
	assert.Equal(t, "Ravi", applicant.Candidate.Name)
	assert.Equal(t, []string{"go"}, applicant.Candidate.Skills)

	mine, err := s.ListApplicationsByCandidate(ctx, cand.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "SRE", mine[0].Job.Title, "newest first")

	count, err := s.CountApplicationsForJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, types.IsConflict(s.DeleteJob(ctx, job.ID)))

	assert.True(t, types.IsNotFound(s.UpdateApplicationStatus(ctx, uuid.New(), types.StatusViewed)))
}
