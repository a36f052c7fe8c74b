// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/booking"
	"github.com/mahmoudalimohamed/royalbus/lib/seatmap"
	"github.com/mahmoudalimohamed/royalbus/lib/ticketpdf"
)

// Screen identifies which view is active.
type Screen int

const (
	// ScreenSearch is the trip search form.
	ScreenSearch Screen = iota
	// ScreenTrips lists the search results.
	ScreenTrips
	// ScreenSeats is the seat map for the opened trip.
	ScreenSeats
	// ScreenDetails collects the payment type and, for admins, the
	// customer details the hold request needs.
	ScreenDetails
	// ScreenConfirm reviews the held seats. The orchestrator is in the
	// held state for as long as this screen is up.
	ScreenConfirm
	// ScreenSuccess shows the finished booking.
	ScreenSuccess
	// ScreenProfile is the booking history.
	ScreenProfile
	// ScreenLogin is the sign-in form, shown when the TUI starts
	// without a session.
	ScreenLogin
	// ScreenAbout is the static service information page.
	ScreenAbout
)

// profilePageSize is the booking-history page size requested from the
// server, matching the web client.
const profilePageSize = 5

// Client is the slice of the API client the TUI drives. *api.Client
// satisfies it.
type Client interface {
	Locations(ctx context.Context) ([]api.City, error)
	SearchTrips(ctx context.Context, query api.TripQuery) ([]api.Trip, error)
	SeatStatus(ctx context.Context, tripID int) (*api.SeatStatusResponse, error)
	HoldSeats(ctx context.Context, tripID int, request api.HoldRequest) (*api.HoldResponse, error)
	ConfirmBooking(ctx context.Context, tripID int, ref string, request api.ConfirmRequest) (*api.ConfirmResponse, error)
	PaymentKey(ctx context.Context, orderID int) (string, error)
	Profile(ctx context.Context, page, limit int) (*api.ProfileResponse, error)
	BookingDetail(ctx context.Context, orderID int) (*api.Booking, error)
	CancelBooking(ctx context.Context, bookingID int) error
}

// Messages delivered by asynchronous commands.
type citiesMsg struct {
	cities []api.City
	err    error
}

type tripsMsg struct {
	trips []api.Trip
	err   error
}

type seatsMsg struct {
	chart *seatmap.Chart
	err   error
}

type heldMsg struct {
	err error
}

type bookedMsg struct {
	outcome *booking.Outcome
	err     error
}

type profileMsg struct {
	profile *api.ProfileResponse
	err     error
}

type cancelledMsg struct {
	err error
}

type ticketSavedMsg struct {
	path string
	err  error
}

// Config configures the booking TUI.
type Config struct {
	Client Client
	// User is the logged-in account; UserType gates the admin-only
	// customer fields and booking cancellation.
	User api.User
	// Auth, when set together with an empty User, makes the TUI start
	// on the sign-in form instead of assuming a session.
	Auth Authenticator
	// PaymentPage is the external payment page base URL.
	PaymentPage string
	// TicketDir is where exported tickets are written. Empty means the
	// current directory.
	TicketDir string
	Logger    *slog.Logger
}

// Model is the top-level bubbletea model for the booking TUI.
type Model struct {
	client      Client
	user        api.User
	auth        Authenticator
	paymentPage string
	ticketDir   string
	logger      *slog.Logger
	theme       Theme
	keys        KeyMap

	width  int
	height int

	screen    Screen
	busy      bool
	status    string
	errorText string
	spinner   spinner.Model

	// Search form. Cities and areas are cycled in place with left and
	// right; the focused field is tracked by searchFocus.
	cities      []api.City
	searchFocus int
	startCity   int
	startArea   int
	destCity    int
	destArea    int
	dateInput   textinput.Model
	roundTrip   bool

	// Trip list.
	trips      []api.Trip
	tripCursor int

	// Seat screen. The orchestrator is created when a trip is opened
	// and lives until the flow finishes or the user backs out.
	trip         api.Trip
	chart        *seatmap.Chart
	orchestrator *booking.Orchestrator
	seatCursor   int

	// Details screen.
	paymentType  api.PaymentType
	detailsFocus int
	nameInput    textinput.Model
	phoneInput   textinput.Model

	// Success screen.
	outcome   *booking.Outcome
	savedPath string

	// Profile screen.
	profile       *api.ProfileResponse
	bookingCursor int
	profilePage   int

	// Login screen.
	loginFocus    int
	emailInput    textinput.Model
	passwordInput textinput.Model
	fieldErrors   map[string][]string

	// About screen remembers where to return to.
	aboutReturn Screen
}

// Search form field indexes.
const (
	fieldStartCity = iota
	fieldStartArea
	fieldDestCity
	fieldDestArea
	fieldDate
	fieldRoundTrip
	searchFieldCount
)

// NewModel creates a Model on the search screen. Locations load
// asynchronously from Init.
func NewModel(config Config) Model {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12

	name := textinput.New()
	name.Placeholder = "customer name"
	name.CharLimit = 60
	name.Width = 30

	phone := textinput.New()
	phone.Placeholder = "customer phone"
	phone.CharLimit = 15
	phone.Width = 30

	loading := spinner.New()
	loading.Spinner = spinner.Dot

	email, password := newLoginInputs()

	model := Model{
		client:        config.Client,
		user:          config.User,
		auth:          config.Auth,
		paymentPage:   config.PaymentPage,
		ticketDir:     config.TicketDir,
		logger:        logger,
		theme:         DefaultTheme,
		keys:          DefaultKeyMap,
		screen:        ScreenSearch,
		busy:          true,
		status:        "loading locations",
		spinner:       loading,
		dateInput:     date,
		nameInput:     name,
		phoneInput:    phone,
		emailInput:    email,
		passwordInput: password,
		paymentType:   api.PaymentOnline,
		profilePage:   1,
	}

	if config.Auth != nil && config.User == (api.User{}) {
		model.screen = ScreenLogin
		model.busy = false
		model.status = ""
	}

	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if model.screen == ScreenLogin {
		return textinput.Blink
	}
	return tea.Batch(model.spinner.Tick, model.loadCities())
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case spinner.TickMsg:
		if !model.busy {
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command

	case citiesMsg:
		return model.handleCities(message)
	case tripsMsg:
		return model.handleTrips(message)
	case seatsMsg:
		return model.handleSeats(message)
	case heldMsg:
		return model.handleHeld(message)
	case bookedMsg:
		return model.handleBooked(message)
	case profileMsg:
		return model.handleProfile(message)
	case cancelledMsg:
		return model.handleCancelled(message)
	case ticketSavedMsg:
		return model.handleTicketSaved(message)
	case loginMsg:
		return model.handleLogin(message)

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

func (model Model) handleKey(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage := message.(tea.KeyMsg)

	// Ctrl+C always quits; plain q only when no text input owns it.
	if keyMessage.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if key.Matches(keyMessage, model.keys.Quit) && !model.textInputFocused() {
		return model, tea.Quit
	}

	// Inputs are ignored while a request is in flight; the orchestrator
	// would reject a second submission anyway, but dropping the key
	// keeps the screens from drifting.
	if model.busy {
		return model, nil
	}

	switch model.screen {
	case ScreenSearch:
		return model.updateSearch(keyMessage)
	case ScreenTrips:
		return model.updateTrips(keyMessage)
	case ScreenSeats:
		return model.updateSeats(keyMessage)
	case ScreenDetails:
		return model.updateDetails(keyMessage)
	case ScreenConfirm:
		return model.updateConfirm(keyMessage)
	case ScreenSuccess:
		return model.updateSuccess(keyMessage)
	case ScreenProfile:
		return model.updateProfile(keyMessage)
	case ScreenLogin:
		return model.updateLogin(keyMessage)
	case ScreenAbout:
		return model.updateAbout(keyMessage)
	}
	return model, nil
}

func (model Model) textInputFocused() bool {
	if model.screen == ScreenLogin {
		return true
	}
	if model.screen == ScreenSearch && model.searchFocus == fieldDate {
		return true
	}
	if model.screen == ScreenDetails && model.detailsFocus > 0 {
		return true
	}
	return false
}

// isAdmin reports whether the logged-in account is counter staff.
func (model Model) isAdmin() bool {
	return model.user.UserType == api.UserAdmin
}

// --- Search screen ---

// isFormNavigation reports whether a keystroke keeps its navigation
// meaning while a text input is focused. Everything else goes into the
// input, so letters bound elsewhere (j, k, q) stay typeable.
func isFormNavigation(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyEnter, tea.KeyEsc:
		return true
	}
	return false
}

func (model Model) updateSearch(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.searchFocus == fieldDate && !isFormNavigation(message) {
		var command tea.Cmd
		model.dateInput, command = model.dateInput.Update(message)
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Profile):
		return model.openProfile()

	case key.Matches(message, model.keys.About):
		return model.openAbout()

	case key.Matches(message, model.keys.Up):
		model.searchFocus = (model.searchFocus + searchFieldCount - 1) % searchFieldCount
		model.syncDateFocus()
		return model, nil

	case key.Matches(message, model.keys.Down):
		model.searchFocus = (model.searchFocus + 1) % searchFieldCount
		model.syncDateFocus()
		return model, nil

	case key.Matches(message, model.keys.Submit):
		return model.submitSearch()

	case key.Matches(message, model.keys.Left):
		model.cycleSearchField(-1)
	case key.Matches(message, model.keys.Right):
		model.cycleSearchField(1)
	}
	return model, nil
}

func (model *Model) syncDateFocus() {
	if model.searchFocus == fieldDate {
		model.dateInput.Focus()
	} else {
		model.dateInput.Blur()
	}
}

// cycleSearchField steps the focused selection. Area indexes reset
// when their city changes so they never point past the new city's
// area list.
func (model *Model) cycleSearchField(step int) {
	if model.searchFocus == fieldRoundTrip {
		model.roundTrip = !model.roundTrip
		return
	}
	if len(model.cities) == 0 {
		return
	}
	cycle := func(index, length int) int {
		if length == 0 {
			return 0
		}
		return (index + step + length) % length
	}
	switch model.searchFocus {
	case fieldStartCity:
		model.startCity = cycle(model.startCity, len(model.cities))
		model.startArea = 0
	case fieldStartArea:
		model.startArea = cycle(model.startArea, len(model.cities[model.startCity].Areas))
	case fieldDestCity:
		model.destCity = cycle(model.destCity, len(model.cities))
		model.destArea = 0
	case fieldDestArea:
		model.destArea = cycle(model.destArea, len(model.cities[model.destCity].Areas))
	}
}

// searchQuery builds the trip query from the form selections.
func (model Model) searchQuery() api.TripQuery {
	start := model.cities[model.startCity]
	destination := model.cities[model.destCity]
	return api.TripQuery{
		StartCity:       start.ID,
		StartArea:       start.Areas[model.startArea].ID,
		DestinationCity: destination.ID,
		DestinationArea: destination.Areas[model.destArea].ID,
		DepartureDate:   model.dateInput.Value(),
		RoundTrip:       model.roundTrip,
	}
}

func (model Model) submitSearch() (tea.Model, tea.Cmd) {
	if len(model.cities) == 0 {
		model.errorText = "locations not loaded yet"
		return model, nil
	}
	if len(model.cities[model.startCity].Areas) == 0 || len(model.cities[model.destCity].Areas) == 0 {
		model.errorText = "selected city has no service areas"
		return model, nil
	}

	model.busy = true
	model.errorText = ""
	model.status = "searching trips"
	return model, tea.Batch(model.spinner.Tick, model.searchTrips(model.searchQuery()))
}

// --- Trip list ---

func (model Model) updateTrips(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenSearch
		model.errorText = ""
		return model, nil

	case key.Matches(message, model.keys.Profile):
		return model.openProfile()

	case key.Matches(message, model.keys.About):
		return model.openAbout()

	case key.Matches(message, model.keys.Up):
		if model.tripCursor > 0 {
			model.tripCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.tripCursor < len(model.trips)-1 {
			model.tripCursor++
		}

	case key.Matches(message, model.keys.Submit):
		if len(model.trips) == 0 {
			return model, nil
		}
		return model.openTrip(model.trips[model.tripCursor])
	}
	return model, nil
}

func (model Model) openTrip(trip api.Trip) (tea.Model, tea.Cmd) {
	model.trip = trip
	model.orchestrator = booking.New(booking.Config{
		Client:      model.client,
		TripID:      trip.ID,
		PaymentPage: model.paymentPage,
		Logger:      model.logger,
	})
	model.chart = nil
	model.seatCursor = 0
	model.busy = true
	model.errorText = ""
	model.status = "loading seats"
	return model, tea.Batch(model.spinner.Tick, model.loadSeats())
}

// --- Seat screen ---

func (model Model) updateSeats(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenTrips
		model.errorText = ""
		return model, nil

	case key.Matches(message, model.keys.Refresh):
		model.busy = true
		model.status = "refreshing seats"
		return model, tea.Batch(model.spinner.Tick, model.loadSeats())
	}

	if model.chart == nil {
		return model, nil
	}
	seats := model.chart.Seats()

	switch {
	case key.Matches(message, model.keys.Up), key.Matches(message, model.keys.Left):
		if model.seatCursor > 0 {
			model.seatCursor--
		}
	case key.Matches(message, model.keys.Down), key.Matches(message, model.keys.Right):
		if model.seatCursor < len(seats)-1 {
			model.seatCursor++
		}

	case key.Matches(message, model.keys.Toggle):
		if len(seats) == 0 {
			return model, nil
		}
		number := seats[model.seatCursor]
		if !model.chart.Toggle(number) {
			model.errorText = fmt.Sprintf("seat %d is taken", number)
			return model, nil
		}
		model.errorText = ""

	case key.Matches(message, model.keys.Submit):
		// Admin customer fields are collected on the details screen;
		// only seat problems block here.
		err := booking.Validate(model.bookingRequest())
		if err != nil && !errors.Is(err, booking.ErrCustomerRequired) {
			model.errorText = err.Error()
			return model, nil
		}
		model.screen = ScreenDetails
		model.detailsFocus = 0
		model.errorText = ""
		return model, nil
	}
	return model, nil
}

// --- Details screen ---

func (model Model) updateDetails(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.detailsFocus > 0 && !isFormNavigation(message) {
		var command tea.Cmd
		if model.detailsFocus == 1 {
			model.nameInput, command = model.nameInput.Update(message)
		} else {
			model.phoneInput, command = model.phoneInput.Update(message)
		}
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenSeats
		model.errorText = ""
		model.detailsFocus = 0
		model.syncDetailsFocus()

	case key.Matches(message, model.keys.Up):
		model.moveDetailsFocus(-1)
	case key.Matches(message, model.keys.Down):
		model.moveDetailsFocus(1)

	case key.Matches(message, model.keys.Submit):
		return model.submitHold()

	case key.Matches(message, model.keys.Left), key.Matches(message, model.keys.Right):
		if model.detailsFocus == 0 {
			if model.paymentType == api.PaymentOnline {
				model.paymentType = api.PaymentCash
			} else {
				model.paymentType = api.PaymentOnline
			}
		}
	}
	return model, nil
}

// moveDetailsFocus steps between the payment selector and, for admins,
// the customer fields.
func (model *Model) moveDetailsFocus(step int) {
	fields := 1
	if model.isAdmin() {
		fields = 3
	}
	model.detailsFocus = (model.detailsFocus + step + fields) % fields
	model.syncDetailsFocus()
}

func (model *Model) syncDetailsFocus() {
	if model.detailsFocus == 1 {
		model.nameInput.Focus()
	} else {
		model.nameInput.Blur()
	}
	if model.detailsFocus == 2 {
		model.phoneInput.Focus()
	} else {
		model.phoneInput.Blur()
	}
}

// --- Confirm screen ---

// updateConfirm handles the review of a held booking. Enter confirms
// it; esc discards the local hold and returns to the seat map.
func (model Model) updateConfirm(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		if err := model.orchestrator.Cancel(); err != nil {
			model.errorText = err.Error()
			return model, nil
		}
		model.screen = ScreenSeats
		model.errorText = ""
		return model, nil

	case key.Matches(message, model.keys.Submit):
		model.busy = true
		model.errorText = ""
		model.status = "confirming booking"
		return model, tea.Batch(model.spinner.Tick, model.confirmHeld())
	}
	return model, nil
}

func (model Model) bookingRequest() booking.Request {
	request := booking.Request{
		PaymentType: model.paymentType,
		ActorType:   model.user.UserType,
	}
	if model.chart != nil {
		request.Seats = model.chart.Chosen()
	}
	if model.isAdmin() {
		request.CustomerName = model.nameInput.Value()
		request.CustomerPhone = model.phoneInput.Value()
	}
	return request
}

func (model Model) submitHold() (tea.Model, tea.Cmd) {
	request := model.bookingRequest()
	if err := booking.Validate(request); err != nil {
		model.errorText = err.Error()
		return model, nil
	}

	model.busy = true
	model.errorText = ""
	model.status = "holding seats"
	return model, tea.Batch(model.spinner.Tick, model.holdSeats(request))
}

// --- Success screen ---

func (model Model) updateSuccess(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenSearch
		model.outcome = nil
		model.savedPath = ""
		model.errorText = ""
		return model, nil

	case key.Matches(message, model.keys.Profile):
		return model.openProfile()

	case key.Matches(message, model.keys.Export):
		if model.outcome == nil {
			return model, nil
		}
		model.busy = true
		model.status = "writing ticket"
		return model, tea.Batch(model.spinner.Tick, model.saveTicket(model.outcome))
	}
	return model, nil
}

// --- Profile screen ---

func (model Model) openProfile() (tea.Model, tea.Cmd) {
	model.screen = ScreenProfile
	model.busy = true
	model.errorText = ""
	model.status = "loading bookings"
	model.bookingCursor = 0
	return model, tea.Batch(model.spinner.Tick, model.loadProfile(model.profilePage))
}

func (model Model) updateProfile(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.screen = ScreenSearch
		model.errorText = ""
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.bookingCursor > 0 {
			model.bookingCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.profile != nil && model.bookingCursor < len(model.profile.Bookings)-1 {
			model.bookingCursor++
		}

	case key.Matches(message, model.keys.NextPage):
		if model.profile != nil && model.profilePage < model.profile.Pagination.TotalPages {
			model.profilePage++
			return model.openProfile()
		}
	case key.Matches(message, model.keys.PrevPage):
		if model.profilePage > 1 {
			model.profilePage--
			return model.openProfile()
		}

	case key.Matches(message, model.keys.Cancel):
		if !model.isAdmin() || model.profile == nil || len(model.profile.Bookings) == 0 {
			return model, nil
		}
		target := model.profile.Bookings[model.bookingCursor]
		if target.Status == api.BookingCancelled {
			model.errorText = "booking is already cancelled"
			return model, nil
		}
		model.busy = true
		model.status = fmt.Sprintf("cancelling booking %d", target.ID)
		return model, tea.Batch(model.spinner.Tick, model.cancelBooking(target.ID))
	}
	return model, nil
}

// --- Message handlers ---

func (model Model) handleCities(message citiesMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		model.errorText = message.err.Error()
		return model, nil
	}
	model.cities = message.cities
	return model, nil
}

func (model Model) handleTrips(message tripsMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		model.errorText = message.err.Error()
		return model, nil
	}
	model.trips = message.trips
	model.tripCursor = 0
	model.screen = ScreenTrips
	return model, nil
}

func (model Model) handleSeats(message seatsMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		model.errorText = message.err.Error()
		return model, nil
	}
	model.chart = message.chart
	if model.seatCursor >= len(model.chart.Seats()) {
		model.seatCursor = 0
	}
	model.screen = ScreenSeats
	return model, nil
}

func (model Model) handleHeld(message heldMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		if model.orchestrator != nil && model.orchestrator.NeedsSeatRefresh() {
			// A chosen seat was taken before the hold landed. Reload the
			// authoritative map; the selection is rebuilt from scratch.
			model.errorText = "some seats were taken; pick again from the refreshed map"
			model.busy = true
			model.status = "refreshing seats"
			return model, tea.Batch(model.spinner.Tick, model.loadSeats())
		}
		model.errorText = message.err.Error()
		return model, nil
	}
	model.screen = ScreenConfirm
	return model, nil
}

func (model Model) handleBooked(message bookedMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		if model.orchestrator != nil && model.orchestrator.NeedsSeatRefresh() {
			// Someone else took a chosen seat. Reload the authoritative
			// map; the selection is rebuilt from scratch.
			model.errorText = "some seats were taken; pick again from the refreshed map"
			model.busy = true
			model.status = "refreshing seats"
			return model, tea.Batch(model.spinner.Tick, model.loadSeats())
		}
		model.errorText = message.err.Error()
		return model, nil
	}
	model.outcome = message.outcome
	model.savedPath = ""
	model.screen = ScreenSuccess
	return model, nil
}

func (model Model) handleProfile(message profileMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		model.errorText = message.err.Error()
		return model, nil
	}
	model.profile = message.profile
	if model.bookingCursor >= len(model.profile.Bookings) {
		model.bookingCursor = 0
	}
	return model, nil
}

func (model Model) handleCancelled(message cancelledMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.busy = false
		model.status = ""
		model.errorText = message.err.Error()
		return model, nil
	}
	// Reload the page so the cancelled booking shows its new status.
	model.status = "loading bookings"
	return model, tea.Batch(model.spinner.Tick, model.loadProfile(model.profilePage))
}

func (model Model) handleTicketSaved(message ticketSavedMsg) (tea.Model, tea.Cmd) {
	model.busy = false
	model.status = ""
	if message.err != nil {
		model.errorText = message.err.Error()
		return model, nil
	}
	model.savedPath = message.path
	return model, nil
}

// --- Commands ---

func (model Model) loadCities() tea.Cmd {
	client := model.client
	return func() tea.Msg {
		cities, err := client.Locations(context.Background())
		return citiesMsg{cities: cities, err: err}
	}
}

func (model Model) searchTrips(query api.TripQuery) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		trips, err := client.SearchTrips(context.Background(), query)
		return tripsMsg{trips: trips, err: err}
	}
}

func (model Model) loadSeats() tea.Cmd {
	orchestrator := model.orchestrator
	return func() tea.Msg {
		chart, err := orchestrator.RefreshSeats(context.Background())
		return seatsMsg{chart: chart, err: err}
	}
}

func (model Model) holdSeats(request booking.Request) tea.Cmd {
	orchestrator := model.orchestrator
	return func() tea.Msg {
		return heldMsg{err: orchestrator.Hold(context.Background(), request)}
	}
}

// confirmHeld finalizes the booking the user reviewed. The hold was
// placed earlier, so the orchestrator rejects this unless it is held.
func (model Model) confirmHeld() tea.Cmd {
	orchestrator := model.orchestrator
	return func() tea.Msg {
		outcome, err := orchestrator.Confirm(context.Background())
		return bookedMsg{outcome: outcome, err: err}
	}
}

func (model Model) loadProfile(page int) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		profile, err := client.Profile(context.Background(), page, profilePageSize)
		return profileMsg{profile: profile, err: err}
	}
}

func (model Model) cancelBooking(bookingID int) tea.Cmd {
	client := model.client
	return func() tea.Msg {
		return cancelledMsg{err: client.CancelBooking(context.Background(), bookingID)}
	}
}

// saveTicket renders the booking PDF next to the working directory.
// Online bookings confirm without an embedded record, so the detail
// endpoint fills it in.
func (model Model) saveTicket(outcome *booking.Outcome) tea.Cmd {
	client := model.client
	directory := model.ticketDir
	return func() tea.Msg {
		record := outcome.Booking
		if record == nil {
			fetched, err := client.BookingDetail(context.Background(), outcome.OrderID)
			if err != nil {
				return ticketSavedMsg{err: err}
			}
			record = fetched
		}

		data, err := ticketpdf.Render(record)
		if err != nil {
			return ticketSavedMsg{err: err}
		}

		path := filepath.Join(directory, fmt.Sprintf("ticket-%d.pdf", record.ID))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return ticketSavedMsg{err: err}
		}
		return ticketSavedMsg{path: path}
	}
}
