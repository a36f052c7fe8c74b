// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

// Authenticator performs the login and reports the resulting account.
// The session manager satisfies this through a small adapter in the
// command layer.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.User, error)
}

type loginMsg struct {
	user api.User
	err  error
}

// Login form field indexes.
const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

func newLoginInputs() (textinput.Model, textinput.Model) {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 80
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 80
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return email, password
}

func (model Model) updateLogin(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !isFormNavigation(message) {
		var command tea.Cmd
		if model.loginFocus == loginFieldEmail {
			model.emailInput, command = model.emailInput.Update(message)
		} else {
			model.passwordInput, command = model.passwordInput.Update(message)
		}
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Up):
		model.moveLoginFocus(-1)
	case key.Matches(message, model.keys.Down):
		model.moveLoginFocus(1)

	case key.Matches(message, model.keys.Submit):
		email := strings.TrimSpace(model.emailInput.Value())
		password := model.passwordInput.Value()
		if email == "" || password == "" {
			model.errorText = "email and password are required"
			return model, nil
		}
		model.busy = true
		model.errorText = ""
		model.fieldErrors = nil
		model.status = "signing in"
		return model, tea.Batch(model.spinner.Tick, model.login(email, password))
	}
	return model, nil
}

func (model *Model) moveLoginFocus(step int) {
	model.loginFocus = (model.loginFocus + step + loginFieldCount) % loginFieldCount
	if model.loginFocus == loginFieldEmail {
		model.emailInput.Focus()
		model.passwordInput.Blur()
	} else {
		model.emailInput.Blur()
		model.passwordInput.Focus()
	}
}

func (model Model) login(email, password string) tea.Cmd {
	auth := model.auth
	return func() tea.Msg {
		user, err := auth.Login(context.Background(), email, password)
		return loginMsg{user: user, err: err}
	}
}

func (model Model) handleLogin(message loginMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		// Validation errors come back keyed by field; anything else is
		// shown as-is.
		if fields := api.FieldErrors(message.err); len(fields) > 0 {
			model.fieldErrors = fields
		} else {
			model.errorText = message.err.Error()
		}
		return model, nil
	}

	model.user = message.user
	model.fieldErrors = nil
	model.screen = ScreenSearch
	model.busy = true
	model.status = "loading locations"
	return model, tea.Batch(model.spinner.Tick, model.loadCities())
}

func (model Model) viewLogin() string {
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)

	marker := func(field int) string {
		if model.loginFocus == field {
			return "> "
		}
		return "  "
	}

	var builder strings.Builder
	builder.WriteString("Sign in\n\n")
	fmt.Fprintf(&builder, "%sEmail:    %s\n", marker(loginFieldEmail), model.emailInput.View())
	for _, problem := range model.fieldErrors["email"] {
		builder.WriteString("            " + errorStyle.Render(problem) + "\n")
	}
	fmt.Fprintf(&builder, "%sPassword: %s\n", marker(loginFieldPassword), model.passwordInput.View())
	for _, problem := range model.fieldErrors["password"] {
		builder.WriteString("            " + errorStyle.Render(problem) + "\n")
	}
	return builder.String()
}
