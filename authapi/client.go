package authapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/roundandgo/sessionkit/enums"
	"github.com/roundandgo/sessionkit/models"
	"github.com/roundandgo/sessionkit/session"
	"github.com/roundandgo/sessionkit/utils/logger"
)

// Client wraps the remote auth API. Every operation returns a result value;
// failures come back as *models.AuthError, never as a panic, and nothing is
// persisted unless the operation fully succeeded.
type Client struct {
	http     *resty.Client
	verify   *resty.Client
	validate *validator.Validate
	config   Config
	sessions map[enums.Flavor]*session.Resolver
}

// New builds a client. sessions maps each flavor to the resolver that
// persists its credentials after a successful login; a flavor missing from
// the map can still log in, it just is not persisted.
func New(config Config, sessions map[enums.Flavor]*session.Resolver) *Client {
	base := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.timeout()).
		SetHeader("Content-Type", "application/json")
	base.JSONMarshal = json.Marshal
	base.JSONUnmarshal = json.Unmarshal

	// The verification-email endpoints are the only retried operations:
	// up to two extra attempts on a 500 or a network failure, waiting
	// 1s, then 2s. Client errors are not transient and never retried.
	verify := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.timeout()).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(verificationRetries).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			return time.Duration(resp.Request.Attempt) * verificationRetryStep, nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() == http.StatusInternalServerError
		})
	verify.JSONMarshal = json.Marshal
	verify.JSONUnmarshal = json.Unmarshal

	if sessions == nil {
		sessions = map[enums.Flavor]*session.Resolver{}
	}

	return &Client{
		http:     base,
		verify:   verify,
		validate: validator.New(),
		config:   config,
		sessions: sessions,
	}
}

// Login authenticates against POST /auth/login and persists the returned
// token plus principal for the flavor. A 2xx response without a token is a
// logical failure; nothing is persisted on any failure path.
func (c *Client) Login(ctx context.Context, flavor enums.Flavor, creds models.Credentials) (*models.Principal, error) {
	if err := c.validate.Struct(creds); err != nil {
		return nil, invalidInput(err)
	}

	var body models.LoginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&body).
		Post("/auth/login")
	if authErr := failure(resp, err); authErr != nil {
		return nil, authErr
	}

	if body.AccessToken == "" {
		logger.LogWarn("login succeeded without a token in the body",
			zap.String("flavor", string(flavor)))
		return nil, &models.AuthError{Kind: enums.ErrKindMissingToken, Message: "login response carried no access token"}
	}

	principal := body.User
	if principal == nil {
		principal = &models.Principal{Type: enums.PrincipalTypeEmail, Email: creds.Email}
	}

	if resolver := c.sessions[flavor]; resolver != nil {
		if err := resolver.PersistLogin(ctx, body.AccessToken, body.RefreshToken, principal); err != nil {
			return nil, err
		}
	}
	return principal, nil
}

// Signup registers a new account. Nothing is persisted; callers log in
// afterwards.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return invalidInput(err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/auth/signup")
	if authErr := failure(resp, err); authErr != nil {
		return authErr
	}
	return nil
}

// RequestIDFindVerification asks the server to mail an account-recovery
// verification link. Retried per the verification policy.
func (c *Client) RequestIDFindVerification(ctx context.Context, email string) error {
	if err := c.validate.Var(email, "required,email"); err != nil {
		return invalidInput(err)
	}

	resp, err := c.verify.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		Post("/auth/find-id/request")
	if authErr := failure(resp, err); authErr != nil {
		return authErr
	}
	return nil
}

// ConfirmIDFind fetches the recovered identifier once the emailed link was
// followed.
func (c *Client) ConfirmIDFind(ctx context.Context, email string) (string, error) {
	if err := c.validate.Var(email, "required,email"); err != nil {
		return "", invalidInput(err)
	}

	var body struct {
		UserID string `json:"userId"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		SetResult(&body).
		Post("/auth/find-id/confirm")
	if authErr := failure(resp, err); authErr != nil {
		return "", authErr
	}
	return body.UserID, nil
}

// ResetRequest starts the password-reset flow. UserID is only sent on the
// legacy contract.
type ResetRequest struct {
	Email  string `json:"email" validate:"required,email"`
	UserID string `json:"userId,omitempty"`
}

// ResetConfirm finishes the flow. VerificationCode is only sent on the
// legacy contract.
type ResetConfirm struct {
	Email            string `json:"email" validate:"required,email"`
	NewPassword      string `json:"newPassword" validate:"required,min=8"`
	UserID           string `json:"userId,omitempty"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

// RequestPasswordReset asks the server to mail a reset-verification link.
// Retried per the verification policy.
func (c *Client) RequestPasswordReset(ctx context.Context, req ResetRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return invalidInput(err)
	}

	path := "/auth/password-reset/request"
	body := any(map[string]string{"email": req.Email})
	if c.config.legacy() {
		path = "/auth/find-password/send-email"
		body = req
	}

	resp, err := c.verify.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if authErr := failure(resp, err); authErr != nil {
		return authErr
	}
	return nil
}

// ConfirmPasswordReset submits the new password. The emailed verification
// step happened out of band; the server re-checks it here, and a 401/403 or
// 404 means "restart the flow", which callers detect via Restartable.
func (c *Client) ConfirmPasswordReset(ctx context.Context, req ResetConfirm) error {
	if err := c.validate.Struct(req); err != nil {
		return invalidInput(err)
	}

	path := "/auth/password-reset/confirm"
	body := any(map[string]string{"email": req.Email, "newPassword": req.NewPassword})
	if c.config.legacy() {
		path = "/auth/reset-password"
		body = req
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return failure(resp, err)
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &models.AuthError{
			Kind:    enums.ErrKindVerificationIncomplete,
			Status:  resp.StatusCode(),
			Message: "verification not completed, restart",
		}
	case http.StatusNotFound:
		return &models.AuthError{
			Kind:    enums.ErrKindVerificationNotFound,
			Status:  resp.StatusCode(),
			Message: "verification record not found, restart",
		}
	}

	if authErr := failure(resp, nil); authErr != nil {
		return authErr
	}
	return nil
}

// Me resyncs the principal from the cookie-authenticated server session.
// A 401 means "not signed in" and is reported as (nil, nil), not an error.
func (c *Client) Me(ctx context.Context) (*models.Principal, error) {
	path := "/user/me"
	if c.config.legacy() {
		path = "/auth/user"
	}

	var body models.Principal
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get(path)
	if err != nil {
		return nil, failure(resp, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, nil
	}
	if authErr := failure(resp, nil); authErr != nil {
		return nil, authErr
	}
	return &body, nil
}
