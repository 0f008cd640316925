package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/config"
	"github.com/Zeeshan2604/hotwheels-api/models"
)

// GoogleVerifier wraps the Firebase Admin SDK client used to verify federated
// ID tokens. It is nil when federated login is not configured.
type GoogleVerifier struct {
	client    *fbauth.Client
	projectID string
}

func NewGoogleVerifier(ctx context.Context, cfg config.FirebaseConfig) (*GoogleVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID},
		option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &GoogleVerifier{client: client, projectID: cfg.ProjectID}, nil
}

type googleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// POST /auth/google
//
// Verifies the Firebase ID token, creates or refreshes the local user row,
// and issues a regular session token. Admin-ness comes from the stored user
// row, never from the federated token.
func GoogleLogin(db *gorm.DB, tokens *Tokens, verifier *GoogleVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Federated login is not configured"})
			return
		}

		var input googleLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		token, err := verifier.client.VerifyIDToken(c.Request.Context(), input.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}
		if token.Audience != verifier.projectID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		email = strings.ToLower(email)

		var user models.User
		err = db.Where("id = ?", token.UID).First(&user).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			user = models.User{
				ID:        token.UID,
				Email:     email,
				Name:      name,
				Picture:   picture,
				Provider:  "google",
				CreatedAt: time.Now(),
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			if err := db.Model(&user).Updates(models.User{Name: name, Picture: picture}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		session, err := tokens.Issue(user.ID, user.IsAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   session,
		})
	}
}
