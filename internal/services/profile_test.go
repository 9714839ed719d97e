package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/data/repos/testutil"
	"github.com/yungbote/eduadmin/internal/domain"
)

func TestProfileServiceCreate(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, db, "amina", "amina@example.com")

	svc := NewProfileService(log, repos.NewProfileRepo(db, log), repos.NewUserRepo(db, log), nil)

	_, err := svc.Create(ctx, &domain.Profile{Email: "nope"})
	e := requireStatus(t, err, http.StatusUnprocessableEntity)
	require.Equal(t, "Name is required", e.Fields["name"])
	require.Equal(t, "Email is not valid", e.Fields["email"])

	_, err = svc.Create(ctx, &domain.Profile{Name: "Amina", UserID: "ghost"})
	e = requireStatus(t, err, http.StatusNotFound)
	require.Equal(t, "User not found", e.Error())

	created, err := svc.Create(ctx, &domain.Profile{Name: "Amina", UserID: user.ID, Email: "Amina@Example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "amina@example.com", created.Email)

	_, err = svc.Create(ctx, &domain.Profile{Name: "Visitor"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Amina", list[0].Name)
}
