package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"licensestore/internal/app/config"
	"licensestore/internal/app/ds"
	"licensestore/internal/app/dto"
	"licensestore/internal/app/handler"
	"licensestore/internal/app/licensing"
	"licensestore/internal/app/middleware"
	"licensestore/internal/app/redis"
	"licensestore/internal/app/repository"
	"licensestore/internal/app/role"
	"licensestore/internal/app/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArtifacts struct {
	objects map[string][]byte
	deleted []string
}

func (f *fakeArtifacts) UploadArtifact(_ context.Context, packageName, originalFilename string, r io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("%s/%d-%s", packageName, len(f.objects), originalFilename)
	f.objects[object] = data
	return object, nil
}

func (f *fakeArtifacts) DeleteArtifact(_ context.Context, object string) error {
	f.deleted = append(f.deleted, object)
	delete(f.objects, object)
	return nil
}

func (f *fakeArtifacts) PresignedURL(_ context.Context, object string) (string, time.Time, error) {
	return "https://artifacts.test/" + object, time.Now().Add(time.Hour), nil
}

type testEnv struct {
	router    *gin.Engine
	repo      *repository.Repository
	cfg       *config.Config
	artifacts *fakeArtifacts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, SigningMethod: jwt.SigningMethodHS256},
	}

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	tokens, err := redis.New(context.Background(), config.RedisConfig{
		Host:        mr.Host(),
		Port:        port,
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tokens.Close() })

	artifacts := &fakeArtifacts{objects: map[string][]byte{}}
	svc := licensing.NewService(repo, licensing.Options{DefaultDays: 30})
	h := handler.NewHandler(repo, svc, artifacts, handler.NewAuthHandler(repo, tokens, cfg))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterAPIRoutes(router, middleware.NewAuthMiddleware(tokens, cfg), middleware.NewIPRateLimiter(1000, 1000))

	return &testEnv{router: router, repo: repo, cfg: cfg, artifacts: artifacts}
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) user(t *testing.T, login string, userRole role.Role) (*ds.User, string) {
	t.Helper()

	user, err := e.repo.CreateUser(context.Background(), login, "x", userRole)
	require.NoError(t, err)
	token, _, err := middleware.SignToken(user.ID, userRole, e.cfg.JWT, time.Now())
	require.NoError(t, err)
	return user, token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *testEnv) createPackage(t *testing.T, adminToken, name string, isBase bool, price int64) dto.PackageResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/api/packages", adminToken, gin.H{"name": name, "is_base": isBase, "price": price})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.PackageResponse](t, w)
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/auth/register", "", gin.H{"login": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decode[dto.LoginResponse](t, w)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "buyer", registered.User.Role)

	w = e.do(http.MethodPost, "/api/auth/register", "", gin.H{"login": "alice", "password": "secret2"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodPost, "/api/auth/register", "", gin.H{"login": "al", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/auth/login", "", gin.H{"login": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/api/auth/login", "", gin.H{"login": "nobody", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/api/auth/login", "", gin.H{"login": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[dto.LoginResponse](t, w).Token

	w = e.do(http.MethodGet, "/api/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decode[dto.BalanceResponse](t, w).Balance)

	w = e.do(http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	refreshed := decode[dto.LoginResponse](t, w)
	require.NotEqual(t, token, refreshed.Token)
	assert.Equal(t, "Bearer", refreshed.TokenType)

	w = e.do(http.MethodGet, "/api/balance", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "old token is revoked by refresh")
	w = e.do(http.MethodPost, "/api/auth/refresh", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	token = refreshed.Token

	w = e.do(http.MethodGet, "/api/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/api/balance", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/api/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	e := newTestEnv(t)
	admin, adminToken := e.user(t, "admin", role.Admin)
	buyer, buyerToken := e.user(t, "buyer", role.Buyer)

	w := e.do(http.MethodGet, "/api/users", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.UserListResponse](t, w)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, dto.UserResponse{ID: admin.ID, Login: "admin", Role: "admin"}, list.Users[0])
	assert.Equal(t, "buyer", list.Users[1].Role)

	path := fmt.Sprintf("/api/users/%d/role", buyer.ID)
	w = e.do(http.MethodPatch, path, buyerToken, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = e.do(http.MethodPatch, path, adminToken, gin.H{"role": "root"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPatch, "/api/users/9999/role", adminToken, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPatch, path, adminToken, gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "admin", decode[dto.UserResponse](t, w).Role)

	// старый токен несёт прежнюю роль, обновлённый - новую
	w = e.do(http.MethodGet, "/api/users", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/auth/refresh", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	promoted := decode[dto.LoginResponse](t, w)
	assert.Equal(t, "admin", promoted.User.Role)

	w = e.do(http.MethodGet, "/api/users", promoted.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPurchaseEndpoints(t *testing.T) {
	e := newTestEnv(t)
	_, adminToken := e.user(t, "admin", role.Admin)
	_, buyerToken := e.user(t, "buyer", role.Buyer)

	base := e.createPackage(t, adminToken, "baseA", true, 100)
	addon := e.createPackage(t, adminToken, "addonX", false, 50)

	w := e.do(http.MethodPost, "/api/packages", adminToken, gin.H{"name": "baseA", "is_base": true, "price": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = e.do(http.MethodPost, "/api/packages", adminToken, gin.H{"name": "broken", "price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, "/api/packages", buyerToken, gin.H{"name": "sneaky", "price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/balance/increase", buyerToken, gin.H{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, "/api/balance/increase", buyerToken, gin.H{"amount": 1000})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1000), decode[dto.BalanceResponse](t, w).Balance)

	purchase := gin.H{"items": []gin.H{{"base_package_id": base.ID, "addon_package_ids": []uint{addon.ID}}}}
	w = e.do(http.MethodPost, "/api/store/purchase", buyerToken, purchase)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	issued := decode[[]dto.IssuedLicenseResponse](t, w)
	require.Len(t, issued, 1)
	assert.Len(t, issued[0].Key, 43)
	assert.Equal(t, []uint{base.ID, addon.ID}, issued[0].PackageIDs)

	w = e.do(http.MethodGet, "/api/balance", buyerToken, nil)
	assert.Equal(t, int64(850), decode[dto.BalanceResponse](t, w).Balance)

	key := issued[0].Key
	w = e.do(http.MethodGet, "/api/licenses/"+key+"/packages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"key":%q,"package_names":["baseA","addonX"]}`, key), w.Body.String())

	w = e.do(http.MethodPut, fmt.Sprintf("/api/packages/%d/deprecate", addon.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodPost, "/api/licenses/packages", "", gin.H{"key": key})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"key":%q,"package_names":["baseA"]}`, key), w.Body.String())

	w = e.do(http.MethodGet, "/api/me/licenses", buyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]map[string]interface{}](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, []interface{}{"baseA"}, mine[0]["package_names"])
	assert.Contains(t, mine[0], "revoked_reason")
	assert.Equal(t, true, mine[0]["valid"])

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			body gin.H
			want int
		}{
			{"empty purchase", gin.H{"items": []gin.H{}}, http.StatusBadRequest},
			{"deprecated add-on", purchase, http.StatusBadRequest},
			{"base as add-on", gin.H{"items": []gin.H{{"base_package_id": base.ID, "addon_package_ids": []uint{base.ID}}}}, http.StatusBadRequest},
			{"insufficient funds", gin.H{"items": []gin.H{{"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}, {"base_package_id": base.ID}}}, http.StatusPaymentRequired},
		}
		for _, tt := range tests {
			w := e.do(http.MethodPost, "/api/store/purchase", buyerToken, tt.body)
			assert.Equal(t, tt.want, w.Code, tt.name)
			assert.Equal(t, "fail", decode[dto.ErrorResponse](t, w).Status)
		}

		w := e.do(http.MethodGet, "/api/balance", buyerToken, nil)
		assert.Equal(t, int64(850), decode[dto.BalanceResponse](t, w).Balance)

		w = e.do(http.MethodPost, "/api/store/purchase", "", purchase)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLicenseAdminEndpoints(t *testing.T) {
	e := newTestEnv(t)
	_, adminToken := e.user(t, "admin", role.Admin)
	buyer, buyerToken := e.user(t, "buyer", role.Buyer)

	base := e.createPackage(t, adminToken, "baseA", true, 100)
	otherBase := e.createPackage(t, adminToken, "baseB", true, 100)

	w := e.do(http.MethodPost, "/api/licenses", adminToken, gin.H{"user_id": buyer.ID, "package_ids": []uint{base.ID, otherBase.ID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, "/api/licenses", adminToken, gin.H{"user_id": 9999, "package_ids": []uint{base.ID}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, "/api/licenses", buyerToken, gin.H{"user_id": buyer.ID, "package_ids": []uint{base.ID}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/licenses", adminToken, gin.H{"user_id": buyer.ID, "package_ids": []uint{base.ID}, "license_days": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	issued := decode[dto.IssuedLicenseResponse](t, w)

	w = e.do(http.MethodGet, "/api/licenses", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.LicenseListResponse](t, w)
	require.Equal(t, 1, list.Total)
	lic := list.Licenses[0]
	assert.Equal(t, issued.Key, lic.Key)
	assert.Equal(t, buyer.ID, lic.UserID)

	w = e.do(http.MethodPost, "/api/licenses/validate", "", gin.H{"key": issued.Key})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.ValidateResponse](t, w).Valid)

	w = e.do(http.MethodPost, fmt.Sprintf("/api/licenses/%d/extend", lic.ID), adminToken, gin.H{"extra_days": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodPost, fmt.Sprintf("/api/licenses/%d/extend", lic.ID), adminToken, gin.H{"extra_days": 3})
	require.Equal(t, http.StatusOK, w.Code)
	extended := decode[dto.LicenseResponse](t, w)
	assert.WithinDuration(t, lic.ExpiresAt.Add(3*24*time.Hour), extended.ExpiresAt, time.Millisecond)

	w = e.do(http.MethodPost, "/api/licenses/9999/extend", adminToken, gin.H{"extra_days": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, fmt.Sprintf("/api/licenses/%d/revoke", lic.ID), adminToken, gin.H{"reason": "fraud"})
	require.Equal(t, http.StatusOK, w.Code)
	revoked := decode[dto.LicenseResponse](t, w)
	require.NotNil(t, revoked.RevokedAt)

	w = e.do(http.MethodPost, fmt.Sprintf("/api/licenses/%d/revoke", lic.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	again := decode[dto.LicenseResponse](t, w)
	require.NotNil(t, again.RevokedReason)
	assert.Equal(t, "fraud", *again.RevokedReason)

	w = e.do(http.MethodPost, fmt.Sprintf("/api/licenses/%d/extend", lic.ID), adminToken, gin.H{"extra_days": 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodPost, "/api/licenses/validate", "", gin.H{"key": issued.Key})
	require.Equal(t, http.StatusOK, w.Code)
	v := decode[dto.ValidateResponse](t, w)
	assert.False(t, v.Valid)
	assert.NotNil(t, v.RevokedAt)

	w = e.do(http.MethodGet, "/api/licenses/"+issued.Key+"/packages", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/licenses/validate", "", gin.H{"key": "unknown"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":false}`, w.Body.String())

	w = e.do(http.MethodGet, "/api/licenses/unknown/packages", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadEndpoints(t *testing.T) {
	e := newTestEnv(t)
	_, adminToken := e.user(t, "admin", role.Admin)
	buyer, _ := e.user(t, "buyer", role.Buyer)

	base := e.createPackage(t, adminToken, "baseA", true, 100)
	addon := e.createPackage(t, adminToken, "addonX", false, 50)
	e.createPackage(t, adminToken, "addonY", false, 50)

	upload := func(id uint, filename string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write([]byte("payload"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/packages/%d/artifact", id), &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		e.router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, upload(base.ID, "v1.tar.gz").Code)
	require.Equal(t, http.StatusOK, upload(base.ID, "v2.tar.gz").Code)
	assert.Len(t, e.artifacts.deleted, 1, "replaced artifact is removed")
	assert.Equal(t, http.StatusNotFound, upload(9999, "x.zip").Code)

	w := e.do(http.MethodPost, "/api/licenses", adminToken, gin.H{"user_id": buyer.ID, "package_ids": []uint{base.ID, addon.ID}})
	require.Equal(t, http.StatusCreated, w.Code)
	key := decode[dto.IssuedLicenseResponse](t, w).Key

	w = e.do(http.MethodGet, "/api/licenses/"+key+"/packages/baseA/download?version=2.0", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	link := decode[dto.DownloadLinkResponse](t, w)
	assert.Contains(t, link.URL, "https://artifacts.test/baseA/")

	w = e.do(http.MethodGet, "/api/licenses/"+key+"/packages/addonX/download", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = e.do(http.MethodGet, "/api/licenses/"+key+"/packages/addonY/download", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/events", "", gin.H{"package_name": "addonY", "ip_address": "203.0.113.7"})
	require.Equal(t, http.StatusCreated, w.Code)
	logged := decode[dto.DownloadEventResponse](t, w)
	assert.False(t, logged.ValidAtLogTime)
	require.NotNil(t, logged.IPAddress)
	assert.Equal(t, "203.0.113.7", *logged.IPAddress)

	w = e.do(http.MethodPost, "/api/events", "", gin.H{"package_name": "addonY", "ip_address": "not-an-ip"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/events?valid=true", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[dto.DownloadEventListResponse](t, w)
	require.Equal(t, 1, events.Total)
	assert.Equal(t, "baseA", events.Events[0].PackageName)
	require.NotNil(t, events.Events[0].PackageVersion)
	assert.Equal(t, "2.0", *events.Events[0].PackageVersion)

	w = e.do(http.MethodGet, "/api/events", adminToken, nil)
	assert.Equal(t, 2, decode[dto.DownloadEventListResponse](t, w).Total)

	w = e.do(http.MethodGet, "/api/events?limit=abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
