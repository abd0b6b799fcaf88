package bastionuser

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/http/httperror"

	"go.inout.gg/bastion"
	"go.inout.gg/bastion/bastionpasswordverifier"
	"go.inout.gg/bastion/db/driver"
)

var (
	//nolint:gochecknoglobals
	FormValidator = bastion.DefaultFormValidator

	//nolint:gochecknoglobals
	FormScrubber = bastion.DefaultFormScrubber

	//nolint:gochecknoglobals
	FormModifier = bastion.DefaultFormModifier
)

const (
	DefaultFieldFirstName  = "first_name"
	DefaultFieldLastName   = "last_name"
	DefaultFieldEmail      = "email"
	DefaultFieldUsername   = "username"
	DefaultFieldIdentifier = "username_or_email"
	DefaultFieldPassword   = "password"
)

// HTTPConfig configures request field names of the HTTP handler.
type HTTPConfig struct {
	*Config

	FieldFirstName  string // optional (default: DefaultFieldFirstName)
	FieldLastName   string // optional (default: DefaultFieldLastName)
	FieldEmail      string // optional (default: DefaultFieldEmail)
	FieldUsername   string // optional (default: DefaultFieldUsername)
	FieldIdentifier string // optional (default: DefaultFieldIdentifier)
	FieldPassword   string // optional (default: DefaultFieldPassword)
}

// defaults fills in field names. A missing Config gets one that checks
// password strength with bastionpasswordverifier defaults.
func (c *HTTPConfig) defaults() {
	c.FieldFirstName = cmp.Or(c.FieldFirstName, DefaultFieldFirstName)
	c.FieldLastName = cmp.Or(c.FieldLastName, DefaultFieldLastName)
	c.FieldEmail = cmp.Or(c.FieldEmail, DefaultFieldEmail)
	c.FieldUsername = cmp.Or(c.FieldUsername, DefaultFieldUsername)
	c.FieldIdentifier = cmp.Or(c.FieldIdentifier, DefaultFieldIdentifier)
	c.FieldPassword = cmp.Or(c.FieldPassword, DefaultFieldPassword)

	if c.Config == nil {
		c.Config = NewConfig(WithPasswordVerifier(bastionpasswordverifier.New(nil)))
	}
}

func (c *HTTPConfig) assert() {
	debug.Assert(c.Config != nil, "Config must be set")
}

// NewHTTPConfig creates a new HTTPConfig with the given configuration options.
func NewHTTPConfig(opts ...func(*HTTPConfig)) *HTTPConfig {
	var config HTTPConfig
	for _, opt := range opts {
		opt(&config)
	}

	config.defaults()

	return &config
}

// WithConfig sets the user handler configuration.
func WithConfig(config *Config) func(*HTTPConfig) {
	return func(c *HTTPConfig) { c.Config = config }
}

// HTTPHandler is a wrapper around Handler handling HTTP requests.
type HTTPHandler struct {
	handler *Handler
	config  *HTTPConfig
	parser  HTTPRequestParser
}

func newHTTPHandler(drv driver.Driver, config *HTTPConfig, parser HTTPRequestParser) *HTTPHandler {
	h := HTTPHandler{
		NewHandler(drv, config.Config),
		config,
		parser,
	}

	debug.Assert(h.handler != nil, "handler must be set")
	debug.Assert(h.config != nil, "config must be set")
	debug.Assert(h.parser != nil, "parser must be set")

	return &h
}

// NewFormHandler creates a new HTTP handler that handles form requests.
//
// If config is nil, the default config is used.
func NewFormHandler(drv driver.Driver, config *HTTPConfig) *HTTPHandler {
	if config == nil {
		config = NewHTTPConfig()
	}

	config.assert()

	return newHTTPHandler(drv, config, &formParser{config})
}

// NewJSONHandler creates a new HTTP handler that handles JSON requests.
//
// If config is nil, the default config is used.
func NewJSONHandler(drv driver.Driver, config *HTTPConfig) *HTTPHandler {
	if config == nil {
		config = NewHTTPConfig()
	}

	config.assert()

	return newHTTPHandler(drv, config, &jsonParser{config})
}

func (h *HTTPHandler) parseUserRegistrationData(req *http.Request) (*UserRegistrationData, error) {
	ctx := req.Context()

	form, err := h.parser.ParseUserRegistrationData(req)
	if err != nil {
		return nil, fmt.Errorf("bastion/user: failed to parse request form: %w", err)
	}

	if err := FormModifier.Struct(ctx, form); err != nil {
		return nil, fmt.Errorf("bastion/user: failed to parse request form: %w", err)
	}

	if err := FormValidator.Struct(form); err != nil {
		return nil, fmt.Errorf("bastion/user: failed to parse request form: %w", err)
	}

	return form, nil
}

// HandleUserRegistration handles a user registration request.
func (h *HTTPHandler) HandleUserRegistration(r *http.Request) (*bastion.User, error) {
	ctx := r.Context()

	form, err := h.parseUserRegistrationData(r)
	if err != nil {
		return nil, httperror.FromError(err, http.StatusBadRequest)
	}

	data := NewUserData(form.Email, form.Username, form.Password)
	data.FirstName = optional(form.FirstName)
	data.LastName = optional(form.LastName)

	user, err := h.handler.CreateUser(ctx, data)
	if err != nil {
		h.logRejectedRegistration(r, form, err)

		var verr *bastionpasswordverifier.PasswordVerificationError

		switch {
		case errors.Is(err, bastion.ErrEmailAlreadyTaken),
			errors.Is(err, bastion.ErrUsernameAlreadyTaken):
			return nil, httperror.FromError(err, http.StatusConflict)
		case errors.As(err, &verr):
			return nil, httperror.FromError(err, http.StatusBadRequest, verr.Error())
		}

		return nil, httperror.FromError(err, http.StatusInternalServerError)
	}

	return user, nil
}

func (h *HTTPHandler) parseUserLoginData(req *http.Request) (*UserLoginData, error) {
	ctx := req.Context()

	form, err := h.parser.ParseUserLoginData(req)
	if err != nil {
		return nil, fmt.Errorf("bastion/user: failed to parse request form: %w", err)
	}

	if err := FormModifier.Struct(ctx, form); err != nil {
		return nil, fmt.Errorf("bastion/user: failed to parse request form: %w", err)
	}

	if err := FormValidator.Struct(form); err != nil {
		return nil, fmt.Errorf("bastion/user: failed to parse request form: %w", err)
	}

	return form, nil
}

// HandleUserLogin handles a user login request.
//
// Unknown users and wrong passwords get the same response.
func (h *HTTPHandler) HandleUserLogin(r *http.Request) (*bastion.User, error) {
	form, err := h.parseUserLoginData(r)
	if err != nil {
		return nil, httperror.FromError(err, http.StatusBadRequest)
	}

	user, err := h.handler.Authenticate(r.Context(), form.Identifier, form.Password)
	if err != nil {
		if errors.Is(err, bastion.ErrInvalidCredentials) {
			return nil, httperror.FromError(err, http.StatusUnauthorized,
				"either username/email or password is incorrect")
		} else if errors.Is(err, bastion.ErrInactiveAccount) {
			return nil, httperror.FromError(err, http.StatusForbidden, "account is inactive")
		}

		return nil, httperror.FromError(err, http.StatusInternalServerError, "unexpected server error")
	}

	return user, nil
}

// logRejectedRegistration logs a failed registration with the email scrubbed.
func (h *HTTPHandler) logRejectedRegistration(r *http.Request, form *UserRegistrationData, err error) {
	ctx := r.Context()

	scrubbed := *form
	scrubbed.Password = ""

	if serr := FormScrubber.Struct(ctx, &scrubbed); serr != nil {
		scrubbed.Email = ""
	}

	h.config.Logger.InfoContext(
		ctx,
		"user registration rejected",
		slog.String("email", scrubbed.Email),
		slog.String("username", scrubbed.Username),
		slog.Any("error", err),
	)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
