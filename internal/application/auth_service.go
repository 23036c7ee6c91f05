package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-auth/config"
	"github.com/oksasatya/go-session-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-session-auth/internal/domain/repository"
	"github.com/oksasatya/go-session-auth/internal/session"
	"github.com/oksasatya/go-session-auth/pkg/helpers"
	"github.com/oksasatya/go-session-auth/pkg/mailer"
)

// Service implements the account flows: local register/login/logout, session
// identity resolution, email confirmation, password reset and the Twitter
// reconciliation in twitter_reconcile.go.
type Service struct {
	Repo         repo.UserRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	Confirm      *helpers.ConfirmTokenManager
	ES           *elasticsearch.Client
	ESUsersIndex string
	Cfg          *config.Config
}

func NewService(r repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, confirm *helpers.ConfirmTokenManager, es *elasticsearch.Client, esUsersIndex string, cfg *config.Config) *Service {
	return &Service{
		Repo:         r,
		Redis:        rdb,
		Logger:       logger,
		Pub:          pub,
		Confirm:      confirm,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Cfg:          cfg,
	}
}

// UserView is the public shape of an account exposed by the API.
type UserView struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
}

func viewOf(u *entity.User) *UserView {
	return &UserView{ID: u.ID, Email: u.Email}
}

func keyResetToken(t string) string { return "pwd:reset:token:" + t }

// Register creates an unconfirmed account and enqueues the confirmation
// email. Email uniqueness is checked by lookup, not by a storage constraint.
func (s *Service) Register(ctx context.Context, email, password string) (*UserView, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: &email, Password: &hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(ctx, u)
	s.indexUser(ctx, u)
	return viewOf(u), nil
}

// Login authenticates against email+password and writes the user id into the
// caller's session. The failure reason is never narrowed down: unknown
// email, OAuth-only account and wrong password all come back as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string, sess *session.Session) (*UserView, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(*u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if u.ForgotPasswordLocked {
		return nil, ErrAccountLocked
	}

	// Independent session write; a failure here leaves the account record
	// untouched and the user simply not logged in.
	if err := sess.SetUserID(ctx, u.ID); err != nil {
		return nil, err
	}
	return viewOf(u), nil
}

// Logout clears the current session only. Sibling sessions of the same
// account stay valid. Calling it without a session succeeds silently.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	return sess.Clear(ctx)
}

// CurrentUser resolves the session to an account. Returns (nil, nil) when the
// session is anonymous or the referenced account no longer exists.
func (s *Service) CurrentUser(ctx context.Context, sess *session.Session) (*entity.User, error) {
	uid := sess.UserID()
	if uid == "" {
		return nil, nil
	}
	return s.Repo.GetByID(ctx, uid)
}

// Me returns the public view of the current user, or nil for anonymous
// sessions.
func (s *Service) Me(ctx context.Context, sess *session.Session) (*UserView, error) {
	u, err := s.CurrentUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return viewOf(u), nil
}

// ConfirmEmail resolves a signed confirmation token and marks the account
// confirmed. Confirming twice succeeds both times; any token or lookup
// failure collapses into ErrNotFound. Sessions are never touched.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	uid, err := s.Confirm.Parse(token)
	if err != nil {
		return ErrNotFound
	}
	if err := s.Repo.SetConfirmed(ctx, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if u, err := s.Repo.GetByID(ctx, uid); err == nil && u != nil {
		s.indexUser(ctx, u)
	}
	return nil
}

// ResetInit starts a password reset. It always succeeds from the caller's
// point of view so unknown emails cannot be probed; when the account exists
// the reset link is returned, a token is stored for 30 minutes and the
// account is locked for password login until the reset completes.
func (s *Service) ResetInit(ctx context.Context, email string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil || s.Redis == nil {
		return "", nil
	}

	tok, err := helpers.GenToken(32)
	if err != nil {
		return "", err
	}
	if err := s.Redis.Set(ctx, keyResetToken(tok), u.ID, 30*time.Minute).Err(); err != nil {
		return "", err
	}
	if err := s.Repo.SetForgotPasswordLocked(ctx, u.ID, true); err != nil {
		return "", err
	}

	link := s.Cfg.ResetPasswordURL + "?token=" + tok
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:      email,
		Subject: "Reset your password",
		Text:    "Reset your password: " + link,
		HTML:    `<html><body><a href="` + link + `">reset password</a></body></html>`,
	})
	return link, nil
}

// ResetConfirm finishes a password reset: stores the new hash and unlocks
// the account. The token is single-use.
func (s *Service) ResetConfirm(ctx context.Context, token, newPassword string) error {
	if s.Redis == nil {
		return ErrNotFound
	}
	uid, err := s.Redis.Get(ctx, keyResetToken(token)).Result()
	if err != nil || uid == "" {
		return ErrNotFound
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, uid, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.Repo.SetForgotPasswordLocked(ctx, uid, false); err != nil {
		return err
	}
	s.Redis.Del(ctx, keyResetToken(token))
	return nil
}

func (s *Service) sendConfirmationEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || s.Confirm == nil || u.Email == nil {
		return
	}
	if s.Cfg != nil && !s.Cfg.MailSendEnabled {
		return
	}
	token, err := s.Confirm.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("confirm token generation failed")
		}
		return
	}
	link := s.Cfg.ConfirmEmailURL + "/" + token
	s.enqueueEmail(ctx, mailer.EmailJob{
		To:      *u.Email,
		Subject: "Confirm your email",
		Text:    "Confirm your email: " + link,
		HTML:    `<html><body><a href="` + link + `">confirm email</a></body></html>`,
	})
}

func (s *Service) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to enqueue email job")
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.EmailOrEmpty(),
		"confirmed":  u.Confirmed,
		"twitter_id": u.TwitterID,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers performs a simple match search on the email field.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"email": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
