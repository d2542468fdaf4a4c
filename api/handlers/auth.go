package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtworks/jis-api/api"
	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/databases"
	"github.com/courtworks/jis-api/models"
)

// Auth handles credential and token requests
type Auth struct {
	DB      databases.UserDatabase
	RDB     databases.PasswordResetDatabase
	Secret  []byte
	BaseURL string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// LoginHandler verifies credentials and issues a bearer token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// the login username is the account email
	user, err := a.DB.FindOne(ctx, bson.M{"email": req.Username})
	if err != nil {
		config.ErrorStatus("invalid username or password", http.StatusUnauthorized, w, nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid username or password", http.StatusUnauthorized, w, nil)
		return
	}

	token, err := api.IssueToken(user.UserID, a.Secret)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(loginResponse{Token: token, User: user.Profile()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MeHandler returns the authenticated caller's profile
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := api.UserFromContext(r.Context())

	b, err := json.Marshal(user.Profile())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type forgotRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordHandler creates a reset token and mails it if the account
// exists. The response never reveals whether the email matched.
func (a Auth) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		config.ErrorStatus("email required", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"email": email})
	if err == nil {
		plain, hashHex, genErr := generateResetToken()
		if genErr == nil {
			_ = a.RDB.InsertOne(ctx, models.PasswordReset{
				UserID:    user.UserID,
				TokenHash: hashHex,
				ExpiresAt: time.Now().Add(1 * time.Hour),
				CreatedAt: time.Now(),
			})
			_ = sendResetEmail(user.Email, user.Name, buildResetLink(a.BaseURL, plain))
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "If that email exists, a reset link has been sent."}`))
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPasswordHandler consumes a reset token and stores the new password hash
func (a Auth) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	token := strings.TrimSpace(req.Token)
	if token == "" || req.Password == "" {
		config.ErrorStatus("token and password required", http.StatusBadRequest, w, nil)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reset, err := a.RDB.FindOne(ctx, bson.M{
		"tokenHash": hashToken(token),
		"usedAt":    bson.M{"$exists": false},
		"expiresAt": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		config.ErrorStatus("invalid or expired token", http.StatusBadRequest, w, nil)
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	if _, err := a.DB.UpdateOne(ctx,
		bson.M{"userID": reset.UserID},
		bson.M{"$set": bson.M{"password": string(newHash)}},
	); err != nil {
		config.ErrorStatus("failed to update password", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now()
	_, _ = a.RDB.UpdateOne(ctx,
		bson.M{"tokenHash": hashToken(token)},
		bson.M{"$set": bson.M{"usedAt": now}},
	)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Password updated successfully"}`))
}

func generateResetToken() (plain, hashHex string, err error) {
	raw := make([]byte, 32)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(raw)
	return plain, hashToken(plain), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildResetLink(baseURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(baseURL, "/"), token)
}

func sendResetEmail(toEmail, toName, link string) error {
	from := mail.NewEmail("Judicial Records", "no-reply@jis.local")
	to := mail.NewEmail(toName, toEmail)
	subject := "Password Reset Request - Judicial Records"
	plainText := "Use the link below to reset your password. The link expires in one hour.\n\n" + link
	htmlContent := fmt.Sprintf(`<p>Use the link below to reset your password. The link expires in one hour.</p><p><a href="%s">Reset password</a></p>`, link)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
