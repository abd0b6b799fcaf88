package bastionuser

import (
	"encoding/json"
	"net/http"
)

var (
	_ HTTPRequestParser = (*formParser)(nil)
	_ HTTPRequestParser = (*jsonParser)(nil)
)

// HTTPRequestParser parses HTTP requests to grab user registration and login data.
type HTTPRequestParser interface {
	ParseUserRegistrationData(r *http.Request) (*UserRegistrationData, error)
	ParseUserLoginData(r *http.Request) (*UserLoginData, error)
}

// UserRegistrationData is the form for user registration.
type UserRegistrationData struct {
	FirstName string `mod:"trim"`
	LastName  string `mod:"trim"`
	Email     string `mod:"trim,lcase" validate:"required,email,max=255" scrub:"emails"`
	Username  string `mod:"trim"       validate:"required,max=150,excludesall=@ "`
	Password  string `validate:"required,max=1024"`
}

// UserLoginData is the form for user login.
//
// Identifier is either a username or an email.
type UserLoginData struct {
	Identifier string `mod:"trim" validate:"required,max=255"`
	Password   string `validate:"required,max=1024"`
}

type jsonParser struct {
	config *HTTPConfig
}

func (p *jsonParser) ParseUserRegistrationData(r *http.Request) (*UserRegistrationData, error) {
	var m map[string]string
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		return nil, err
	}

	return &UserRegistrationData{
		FirstName: m[p.config.FieldFirstName],
		LastName:  m[p.config.FieldLastName],
		Email:     m[p.config.FieldEmail],
		Username:  m[p.config.FieldUsername],
		Password:  m[p.config.FieldPassword],
	}, nil
}

func (p *jsonParser) ParseUserLoginData(r *http.Request) (*UserLoginData, error) {
	var m map[string]string
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		return nil, err
	}

	return &UserLoginData{
		Identifier: m[p.config.FieldIdentifier],
		Password:   m[p.config.FieldPassword],
	}, nil
}

type formParser struct {
	config *HTTPConfig
}

func (p *formParser) ParseUserRegistrationData(r *http.Request) (*UserRegistrationData, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	return &UserRegistrationData{
		FirstName: r.PostFormValue(p.config.FieldFirstName),
		LastName:  r.PostFormValue(p.config.FieldLastName),
		Email:     r.PostFormValue(p.config.FieldEmail),
		Username:  r.PostFormValue(p.config.FieldUsername),
		Password:  r.PostFormValue(p.config.FieldPassword),
	}, nil
}

func (p *formParser) ParseUserLoginData(r *http.Request) (*UserLoginData, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	return &UserLoginData{
		Identifier: r.PostFormValue(p.config.FieldIdentifier),
		Password:   r.PostFormValue(p.config.FieldPassword),
	}, nil
}
