package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauth_state"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleTokenInfo  = "https://oauth2.googleapis.com/tokeninfo"
)

type GoogleOAuthHandler struct {
	cfg          *config.Config
	authSvc      *service.AuthService
	http         *http.Client
	userInfoURL  string
	tokenInfoURL string
}

func NewGoogleOAuthHandler(cfg *config.Config, authSvc *service.AuthService) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		cfg:          cfg,
		authSvc:      authSvc,
		http:         &http.Client{Timeout: 10 * time.Second},
		userInfoURL:  googleUserInfo,
		tokenInfoURL: googleTokenInfo,
	}
}

func (h *GoogleOAuthHandler) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.OAuth.GoogleClientID,
		ClientSecret: h.cfg.OAuth.GoogleClientSecret,
		RedirectURL:  h.cfg.OAuth.GoogleRedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

func (h *GoogleOAuthHandler) configured(c *gin.Context) bool {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured", "code": "unavailable"})
		return false
	}
	return true
}

// Redirect sends the user to the Google consent screen with a one-time state.
func (h *GoogleOAuthHandler) Redirect(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.cfg.IsProduction(), true)
	c.Redirect(http.StatusFound, h.OAuth2Config().AuthCodeURL(state))
}

type googleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Callback checks state, exchanges the code, fetches the profile and returns a JWT.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state", "code": "validation_error"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.IsProduction(), true)

	code := c.Query("code")
	if code == "" {
		badRequest(c, "code", "is required")
		return
	}
	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, h.http)
	conf := h.OAuth2Config()
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		logrus.WithError(err).Warn("google oauth: code exchange failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "exchange failed", "code": "unauthorized"})
		return
	}
	var info googleProfile
	if err := h.getJSON(ctx, conf.Client(ctx, tok), h.userInfoURL, &info); err != nil {
		respondError(c, fmt.Errorf("google userinfo: %w: %w", domain.ErrUnavailable, err))
		return
	}
	h.login(c, service.GoogleIdentity{
		ID:            info.ID,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		Name:          info.Name,
		Picture:       info.Picture,
	})
}

// tokenInfo is the response of Google's tokeninfo endpoint for an ID token.
// email_verified arrives as the string "true" or "false".
type tokenInfo struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Token accepts an ID token from a mobile sign-in and returns a JWT.
func (h *GoogleOAuthHandler) Token(c *gin.Context) {
	if !h.configured(c) {
		return
	}
	var req struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "id_token", "is required")
		return
	}
	var info tokenInfo
	err := h.getJSON(c.Request.Context(), h.http, h.tokenInfoURL+"?id_token="+url.QueryEscape(req.IDToken), &info)
	if err != nil || info.Sub == "" || info.Aud != h.cfg.OAuth.GoogleClientID {
		if err != nil {
			logrus.WithError(err).Warn("google oauth: id token rejected")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id_token", "code": "unauthorized"})
		return
	}
	h.login(c, service.GoogleIdentity{
		ID:            info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
		Picture:       info.Picture,
	})
}

func (h *GoogleOAuthHandler) login(c *gin.Context, id service.GoogleIdentity) {
	u, access, err := h.authSvc.LoginWithGoogle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("google login")
	c.JSON(http.StatusOK, gin.H{"user": u, "access_token": access, "token_type": "Bearer"})
}

func (h *GoogleOAuthHandler) getJSON(ctx context.Context, client *http.Client, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
