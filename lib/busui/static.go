// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// aboutMarkdown is the static service information page. It is rendered
// through the markdown renderer so the copy can be edited without
// touching layout code.
const aboutMarkdown = `# Royal Bus

Royal Bus runs daily coach service between Egyptian cities. This
terminal client books seats against the same service as the website.

## How booking works

1. Search for a trip by route and date.
2. Pick seats on the live seat map. Red seats are taken.
3. Confirm. Seats are held briefly while you review; the hold expires
   on its own if you walk away.
4. Pay **online** through the secure payment page, or **cash** at the
   counter for staff-assisted bookings.

A booking covers at most eight seats.

## Tickets

Confirmed bookings can be exported as a PDF ticket from the success
screen or with the ticket command. Present the ticket when boarding.

## Support

Cancellations are handled at the counter or by staff accounts.
Unpaid online bookings are released automatically.
`

func (model Model) openAbout() (tea.Model, tea.Cmd) {
	model.aboutReturn = model.screen
	model.screen = ScreenAbout
	model.errorText = ""
	return model, nil
}

func (model Model) updateAbout(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Back) {
		model.screen = model.aboutReturn
	}
	return model, nil
}

func (model Model) viewAbout() string {
	width := model.width
	if width <= 0 || width > 80 {
		width = 80
	}
	return renderMarkdown(aboutMarkdown, model.theme, width)
}
