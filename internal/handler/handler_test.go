package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/memstore"
	"utsavdarshan/internal/models"
	"utsavdarshan/internal/service"
	"utsavdarshan/pkg/cloudinary"
	"utsavdarshan/pkg/geocode"
	"utsavdarshan/pkg/location"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newDirectory(t *testing.T) (*service.DirectoryService, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	return service.NewDirectoryService(config.DirectoryConfig{}, st, st, st), st
}

func createPandal(t *testing.T, dir *service.DirectoryService, p models.Pandal) *models.Pandal {
	t.Helper()
	created, err := dir.CreatePandal(context.Background(), p)
	require.NoError(t, err)
	return created
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&service.ValidationError{Fields: map[string]string{"score": "must be at most 5"}}, http.StatusBadRequest, "validation_error"},
		{fmt.Errorf("get pandal: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("list: %w: %w", domain.ErrUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable, "unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, fmt.Errorf("insert: %w: %w", domain.ErrUnavailable, errors.New("password=hunter2")))
	assert.NotContains(t, w.Body.String(), "hunter2")
}

type fakeFinder struct {
	center location.Point
	types  []string
	places []geocode.Place
	err    error
}

func (f *fakeFinder) NearbyPlaces(_ context.Context, center location.Point, _ int, types []string) ([]geocode.Place, error) {
	f.center, f.types = center, types
	return f.places, f.err
}

func placesEngine(h *PlacesHandler) *gin.Engine {
	r := gin.New()
	r.GET("/pandals/:id/nearby-places", h.NearbyPlaces)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNearbyPlaces(t *testing.T) {
	dir, _ := newDirectory(t)
	located := createPandal(t, dir, models.Pandal{Name: "Lalbaugcha Raja", Location: &location.Point{Lat: 18.9777, Lon: 72.8333}})
	unlocated := createPandal(t, dir, models.Pandal{Name: "Unmapped"})

	finder := &fakeFinder{places: []geocode.Place{{ID: "p1", Name: "KEM Hospital", Type: "hospital"}}}
	r := placesEngine(NewPlacesHandler(dir, finder))

	w := get(r, "/pandals/"+located.ID+"/nearby-places?types=hospital,+police,")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "KEM Hospital")
	assert.Equal(t, []string{"hospital", "police"}, finder.types)
	assert.Equal(t, *located.Location, finder.center)

	w = get(r, "/pandals/"+located.ID+"/nearby-places")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, geocode.DefaultPlaceTypes, finder.types)

	assert.Equal(t, http.StatusBadRequest, get(r, "/pandals/"+unlocated.ID+"/nearby-places").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/pandals/nope/nearby-places").Code)

	finder.err = errors.New("quota exceeded")
	finder.places = nil
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/pandals/"+located.ID+"/nearby-places").Code)
}

type fakeCloud struct {
	folder string
	data   []byte
	err    error
}

func (f *fakeCloud) UploadImage(_ context.Context, file io.Reader, folder, publicID string) (cloudinary.Upload, error) {
	if f.err != nil {
		return cloudinary.Upload{}, f.err
	}
	f.folder = folder
	f.data, _ = io.ReadAll(file)
	url := "https://res.cloudinary.com/demo/image/upload/" + folder + "/" + publicID
	return cloudinary.Upload{URL: url, PublicID: folder + "/" + publicID}, nil
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="pandal.jpg"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadPandalImage(t *testing.T) {
	dir, _ := newDirectory(t)
	p := createPandal(t, dir, models.Pandal{Name: "Lalbaugcha Raja"})
	cloud := &fakeCloud{}
	r := gin.New()
	r.POST("/pandals/:id/image", NewUploadHandler(dir, cloud, "utsavdarshan/pandals").UploadPandalImage)

	post := func(id, contentType string) *httptest.ResponseRecorder {
		body, ct := multipartImage(t, contentType, []byte("jpeg-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/pandals/"+id+"/image", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(p.ID, "image/jpeg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "utsavdarshan/pandals/"+p.ID, cloud.folder)
	assert.Equal(t, []byte("jpeg-bytes"), cloud.data)

	stored, err := dir.GetPandal(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.ImageURL, "https://res.cloudinary.com/demo/image/upload/utsavdarshan/pandals/")

	assert.Equal(t, http.StatusBadRequest, post(p.ID, "application/pdf").Code)
	assert.Equal(t, http.StatusNotFound, post("missing", "image/jpeg").Code)

	cloud.err = errors.New("cloudinary down")
	assert.Equal(t, http.StatusServiceUnavailable, post(p.ID, "image/png").Code)
}

func newOAuthHandler(t *testing.T, tokenInfo http.HandlerFunc) (*GoogleOAuthHandler, *memstore.Store) {
	t.Helper()
	srv := httptest.NewServer(tokenInfo)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		JWT:   config.JWTConfig{AccessSecret: "oauth-test", AccessExpiry: time.Hour, Issuer: "utsavdarshan"},
		OAuth: config.OAuthConfig{GoogleClientID: "client-123", AdminEmails: []string{"admin@example.com"}},
	}
	st := memstore.New()
	h := NewGoogleOAuthHandler(cfg, service.NewAuthService(cfg, st))
	h.tokenInfoURL = srv.URL
	return h, st
}

func postToken(h *GoogleOAuthHandler, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/auth/google/token", h.Token)
	req := httptest.NewRequest(http.MethodPost, "/auth/google/token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleTokenLogin(t *testing.T) {
	h, st := newOAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "good-token", r.URL.Query().Get("id_token"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sub": "google-42", "aud": "client-123", "email": "admin@example.com",
			"email_verified": "true", "name": "Admin",
		})
	})

	w := postToken(h, `{"id_token":"good-token"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		User        models.User `json:"user"`
		AccessToken string      `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "google-42", resp.User.ID)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)

	u, err := st.GetUser(context.Background(), "google-42")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)

	assert.Equal(t, http.StatusBadRequest, postToken(h, `{}`).Code)
}

func TestGoogleTokenUnverifiedEmailIsNotAdmin(t *testing.T) {
	h, _ := newOAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sub": "google-77", "aud": "client-123", "email": "admin@example.com", "email_verified": "false",
		})
	})

	w := postToken(h, `{"id_token":"unverified"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.RoleVisitor, resp.User.Role)
}

func TestGoogleTokenRejected(t *testing.T) {
	h, _ := newOAuthHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id_token") == "other-app" {
			_ = json.NewEncoder(w).Encode(map[string]string{"sub": "g1", "aud": "someone-else"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})
	assert.Equal(t, http.StatusUnauthorized, postToken(h, `{"id_token":"expired"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, postToken(h, `{"id_token":"other-app"}`).Code)
}

func TestGoogleRedirectSetsState(t *testing.T) {
	h, _ := newOAuthHandler(t, func(http.ResponseWriter, *http.Request) {})
	r := gin.New()
	r.GET("/auth/google", h.Redirect)
	r.GET("/auth/google/callback", h.Callback)

	w := get(r, "/auth/google")
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, oauthStateCookie, cookies[0].Name)
	assert.Contains(t, w.Header().Get("Location"), "state="+cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=x", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
