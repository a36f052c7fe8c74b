// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

type fakeAuth struct {
	user api.User
	err  error
}

func (fake *fakeAuth) Login(ctx context.Context, email, password string) (api.User, error) {
	if fake.err != nil {
		return api.User{}, fake.err
	}
	return fake.user, nil
}

func loginModel(auth Authenticator) Model {
	return NewModel(Config{
		Client: testClient(),
		Auth:   auth,
		Logger: slog.New(slog.DiscardHandler),
	})
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		model = press(t, model, keyRune(r))
	}
	return model
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	t.Parallel()

	model := loginModel(&fakeAuth{})
	if model.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", model.screen)
	}
	if model.busy {
		t.Error("login screen should not start busy")
	}
}

func TestLoginSubmitRequiresBothFields(t *testing.T) {
	t.Parallel()

	model := loginModel(&fakeAuth{})
	model = press(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.busy {
		t.Fatal("empty form submitted")
	}
	if !strings.Contains(model.errorText, "required") {
		t.Errorf("errorText = %q", model.errorText)
	}
}

func TestLoginSuccessLoadsLocations(t *testing.T) {
	t.Parallel()

	auth := &fakeAuth{user: api.User{Name: "Nour", UserType: api.UserPassenger}}
	model := loginModel(auth)

	model = typeText(t, model, "nour@example.com")
	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = typeText(t, model, "secret")
	model = press(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if !model.busy {
		t.Fatal("expected sign-in to set busy")
	}

	command := model.login("nour@example.com", "secret")
	model = press(t, model, command())
	if model.screen != ScreenSearch {
		t.Fatalf("screen = %v, want search", model.screen)
	}
	if model.user.Name != "Nour" {
		t.Errorf("user = %+v", model.user)
	}
	if !model.busy {
		t.Error("expected locations load after sign-in")
	}
}

func TestLoginFieldErrors(t *testing.T) {
	t.Parallel()

	auth := &fakeAuth{err: &api.Error{
		Category:   api.CategoryValidation,
		StatusCode: 400,
		Message:    "validation failed",
		Fields:     map[string][]string{"email": {"Enter a valid email address."}},
	}}
	model := loginModel(auth)

	command := model.login("nope", "secret")
	model = press(t, model, command())
	if model.screen != ScreenLogin {
		t.Fatalf("screen = %v, want login", model.screen)
	}
	if len(model.fieldErrors["email"]) != 1 {
		t.Fatalf("fieldErrors = %v", model.fieldErrors)
	}
	if !strings.Contains(model.View(), "Enter a valid email address.") {
		t.Error("field error not shown in the view")
	}
}

func TestLettersTypeIntoLoginFields(t *testing.T) {
	t.Parallel()

	// q and j are bound keys elsewhere; on the login form they must
	// insert text instead of quitting or moving.
	model := loginModel(&fakeAuth{})
	model = typeText(t, model, "qj")
	if got := model.emailInput.Value(); got != "qj" {
		t.Errorf("email input = %q, want qj", got)
	}
}
