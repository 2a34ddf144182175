package profile

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/testutils"
)

func insertTestUser(t *testing.T, pool *pgxpool.Pool, name string) int32 {
	t.Helper()
	var id int32
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (name, email, password, avatar) VALUES ($1, $2, 'x', 'avatar-url') RETURNING id`,
		name, fmt.Sprintf("%s@example.com", name),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestUpsertProfileTwiceKeepsOneRow(t *testing.T) {
	pool := testutils.StartPostgres(t)
	svc := NewProfileService(pool)
	ctx := context.Background()
	userID := insertTestUser(t, pool, "alice")

	first, err := svc.UpsertProfile(ctx, userID, UpsertProfileRequest{
		Status: "Junior Developer",
		Skills: "Go",
	})
	require.NoError(t, err)
	require.Equal(t, "Junior Developer", first.Status)
	require.Equal(t, "alice", first.User.Name)

	second, err := svc.UpsertProfile(ctx, userID, UpsertProfileRequest{
		Status:  "Senior Developer",
		Skills:  "Go, SQL",
		Company: strPtr("Acme"),
	})
	require.NoError(t, err)
	require.Equal(t, "Senior Developer", second.Status)
	require.Equal(t, []string{"Go", "SQL"}, second.Skills)
	require.NotNil(t, second.Company)
	require.Equal(t, "Acme", *second.Company)

	var count int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM profiles WHERE user_id = $1`, userID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRemoveExperienceAbsentIDIsNoOp(t *testing.T) {
	pool := testutils.StartPostgres(t)
	svc := NewProfileService(pool)
	ctx := context.Background()
	userID := insertTestUser(t, pool, "bob")

	_, err := svc.UpsertProfile(ctx, userID, UpsertProfileRequest{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, userID, AddExperienceRequest{
		Title: "Engineer", Company: "First Corp", From: "2019-01-01",
	})
	require.NoError(t, err)
	p, err := svc.AddExperience(ctx, userID, AddExperienceRequest{
		Title: "Engineer", Company: "Second Corp", From: "2021-01-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)

	p, err = svc.RemoveExperience(ctx, userID, "no-such-id")
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	require.Equal(t, "First Corp", p.Experience[0].Company)
	require.Equal(t, "Second Corp", p.Experience[1].Company)

	p, err = svc.RemoveExperience(ctx, userID, p.Experience[0].ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	require.Equal(t, "Second Corp", p.Experience[0].Company)
}

func TestAddExperienceWithoutProfile(t *testing.T) {
	pool := testutils.StartPostgres(t)
	svc := NewProfileService(pool)
	userID := insertTestUser(t, pool, "carol")

	_, err := svc.AddExperience(context.Background(), userID, AddExperienceRequest{
		Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	require.Equal(t, "There is no profile for this user", appErr.Message)
}

func TestDeleteAccountRemovesProfileAndUser(t *testing.T) {
	pool := testutils.StartPostgres(t)
	svc := NewProfileService(pool)
	ctx := context.Background()
	userID := insertTestUser(t, pool, "dave")

	_, err := svc.UpsertProfile(ctx, userID, UpsertProfileRequest{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, userID))

	_, err = svc.GetOwnProfile(ctx, userID)
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode())

	var users int
	err = pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE id = $1`, userID).Scan(&users)
	require.NoError(t, err)
	require.Zero(t, users)
}

func TestConcurrentExperienceAppendsLoseNoUpdate(t *testing.T) {
	pool := testutils.StartPostgres(t)
	svc := NewProfileService(pool)
	ctx := context.Background()
	userID := insertTestUser(t, pool, "erin")

	_, err := svc.UpsertProfile(ctx, userID, UpsertProfileRequest{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AddExperience(ctx, userID, AddExperienceRequest{
				Title:   fmt.Sprintf("Role %d", i),
				Company: "Acme",
				From:    "2020-01-01",
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	p, err := svc.GetOwnProfile(ctx, userID)
	require.NoError(t, err)
	require.Len(t, p.Experience, n)

	seen := map[string]bool{}
	for _, exp := range p.Experience {
		require.False(t, seen[exp.ID])
		seen[exp.ID] = true
	}
}
