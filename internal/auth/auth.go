package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	config "github.com/Ramy-Emad2022/ecommerce-backend/configs"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

const (
	// SessionName is the cookie-session name shared with main.
	SessionName = "shopsess"

	sessionUserKey = "user_id"
	contextUserKey = "user_id"
)

// Auth performs the OIDC login/callback dance and stores the resolved
// user id in the cookie session. Route protection itself lives in
// RequireAuth, which only needs the database.
type Auth struct {
	db           *gorm.DB
	log          *zap.Logger
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
}

func New(ctx context.Context, gdb *gorm.DB, log *zap.Logger, cfg config.OIDCConfig) (*Auth, error) {

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("OIDC provider init error: %w", err)
	}

	return &Auth{
		db:       gdb,
		log:      log,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
		},
	}, nil
}

// GET /auth/login
func (a *Auth) Login(c *gin.Context) {
	state := "rand" // TODO: generate & store real CSRF-safe state if needed
	url := a.oauth2Config.AuthCodeURL(state)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/callback
func (a *Auth) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := a.oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone_number"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	// Upsert user by OIDC subject
	var user models.User
	if err := a.db.Where("oidc_id = ?", claims.Sub).First(&user).Error; err != nil {
		user = models.User{
			OIDCID:   claims.Sub,
			Username: claims.Name,
			Email:    claims.Email,
			Phone:    claims.Phone,
		}
		if err := a.db.Create(&user).Error; err != nil {
			a.log.Error("user upsert failed", zap.String("sub", claims.Sub), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

// RequireAuth ensures the session carries a known user and injects the
// user id into the gin context for handlers.
func RequireAuth(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get(sessionUserKey).(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := gdb.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set(contextUserKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's id, as resolved by
// RequireAuth. ok is false when the request never passed the middleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
