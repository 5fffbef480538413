package directory_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/openummah/masjidhub/internal/directory/domain"
	dirhttp "github.com/openummah/masjidhub/internal/directory/http"
	"github.com/openummah/masjidhub/internal/directory/service"
	mongostore "github.com/openummah/masjidhub/internal/directory/store/drivers/mongo"
	"github.com/openummah/masjidhub/pkg/cryptox"
	"github.com/openummah/masjidhub/pkg/httpx"
	"github.com/openummah/masjidhub/pkg/idx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/masjidsdk"
)

/*
 * Common helpers for directory service end-to-end tests. Each test gets a
 * fresh MongoDB container and an in-process HTTP server driven through the
 * SDK client.
 */

const (
	mongoImage = "mongo:7"

	siteAdminEmail = "admin@openummah.org"
)

// setupDirectoryServer starts MongoDB in a container, wires the full service
// stack over it and returns an SDK client plus the raw store handle for
// fixtures the API has no endpoint for.
func setupDirectoryServer(t *testing.T) (*masjidsdk.Client, *mongostore.Store) {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        mongoImage,
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err, "start mongo container")
	t.Cleanup(func() {
		_ = ctr.Terminate(context.Background())
	})

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "27017")
	require.NoError(t, err)

	st, err := mongostore.NewStore(fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "masjidhub_e2e")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close(context.Background())
	})
	require.NoError(t, st.EnsureIndexes(ctx))

	signer := &jwtx.Signer{
		Secret: []byte("e2e-test-secret"),
		Issuer: "masjidhub-e2e",
		TTL:    time.Hour,
	}

	router := dirhttp.NewRouter(signer, "e2e", st, slog.New(slog.DiscardHandler), false,
		httpx.NewMetrics("e2e", prometheus.NewRegistry()))
	router.AuthService = &service.AuthService{Store: st, Signer: signer}
	router.MosqueService = &service.MosqueService{Store: st}
	router.SalahTimesService = &service.SalahTimesService{Store: st}
	router.EventService = &service.EventService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return masjidsdk.NewClient(srv.URL), st
}

// seedSiteAdmin inserts a site-wide admin account directly and returns its
// generated password: registration only hands out the mosque admin role.
func seedSiteAdmin(t *testing.T, st *mongostore.Store) string {
	t.Helper()

	password, err := cryptox.GeneratePassword()
	require.NoError(t, err)
	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, st.Users().CreateUser(context.Background(), domain.User{
		ID:           idx.New().String(),
		Email:        siteAdminEmail,
		Name:         "Site Admin",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	return password
}
