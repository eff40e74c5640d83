package internal

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"personix/internal/database"
	"personix/internal/logging"
	"personix/internal/msgtypes"
	"personix/internal/tui"
	"personix/internal/tui/widgets"

	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const HeaderHeight = 6                         // Height of the header zones
var activeSpinners = make(map[int16]time.Time) // Track active spinners by ids

// modalScreen is implemented by screens with a sub-mode (confirmation prompt,
// inline create form) that should receive esc instead of the app.
type modalScreen interface {
	InModal() bool
}

// App is the root bubbletea model composing all zones.
type App struct {
	ready         bool
	width, height int
	appVersion    string

	// Base context for all app operations
	ctx context.Context

	// UI zones
	profile     *tui.ProfileZone
	keybindings *tui.KeybindingsZone
	logo        *tui.LogoZone
	workingZone *tui.WorkingZone
	statusZone  *tui.StatusZone
	db          *database.Service

	// Message channel for sending messages to the app from widgets/goroutines
	msgChan chan tea.Msg

	// Spinner for splash screen and status zone
	spinnerView       string
	spinnerControl    *SpinnerControl
	spinnerActive     bool
	initialTransition bool

	// Info message debouncing
	infoTag int

	log    *zap.Logger
	auxlog *stdlog.Logger
}

// GetMsgChan returns the message channel for sending messages to the app
func (a *App) GetMsgChan() chan tea.Msg {
	return a.msgChan
}

// NewApp creates the root model and all of its screens.
func NewApp(appVersion string, spinnerCtrl *SpinnerControl, msgChan chan tea.Msg) *App {
	auxlog := logging.GetAuxLogger()
	log := logging.GetGlobalLogger()
	log.Info(fmt.Sprintf("App version: %s", appVersion))

	db := database.New()
	if db == nil {
		auxlog.Println("Failed to initialize database")
		panic("failed to initialize database")
	}
	auxlog.Println("Database initialized successfully")

	baseCtx := context.Background()

	app := &App{
		appVersion:     appVersion,
		ctx:            baseCtx,
		profile:        tui.NewProfileZone(db, baseCtx),
		keybindings:    tui.NewKeybindingsZone(),
		logo:           tui.NewLogoZone(),
		statusZone:     tui.NewStatusZone(),
		db:             db,
		msgChan:        msgChan,
		spinnerControl: spinnerCtrl,
		log:            log,
		auxlog:         auxlog,
	}

	// Screens start without service clients; Init wires them from the active
	// profile, and profile activation re-wires them.
	app.workingZone = tui.NewWorkingZone(
		widgets.NewMenu(),
		widgets.NewPersonaForm(baseCtx, nil),
		widgets.NewLookup(baseCtx, nil, db),
		widgets.NewActivity(baseCtx, nil),
		widgets.NewQuery(baseCtx, nil),
		widgets.NewProfiles(baseCtx, db),
	)

	app.keybindings.SetKeyBindingsGetter(app.workingZone.GetKeyBindings)

	return app
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	defer logging.LogPanic()

	var initError string

	initAppCmd := func() tea.Msg {
		a.auxlog.Println("[app.Init] - start")

		if profile, err := a.db.GetActiveProfile(); err == nil && profile != nil {
			personixDir, _ := logging.GetPersonixDir()
			rest, err := profile.RestFromProfile(personixDir)
			if err != nil {
				a.log.Warn("Failed to create service clients",
					zap.Error(err), zap.String("profile", profile.ProfileName()))
				initError = err.Error()
			} else {
				a.workingZone.SetRest(rest)
				a.auxlog.Println("[app.Init] - service clients ready")
			}
		}

		a.ready = true
		a.ClearError()
		a.auxlog.Println("[app.Init] - completed")
		return nil
	}

	startScreenCmd := func() tea.Msg {
		if hasProfile, err := a.db.HasActiveProfile(); err == nil && !hasProfile {
			return msgtypes.SetScreenMsg{Screen: "profiles"}
		}
		return nil
	}

	// Delay the error so the splash spinner start does not clear it
	go func() {
		time.Sleep(1 * time.Second)
		if initError != "" {
			a.msgChan <- msgtypes.ErrorMsg{Err: fmt.Errorf("%s", initError)}
		}
	}()

	return tea.Sequence(
		initAppCmd, // splash screen spinner already covers this
		msgtypes.ProcessWithSpinner(a.profile.SetData),
		startScreenCmd,
	)
}

// forceStopAllSpinners clears every active spinner without the usual delay.
func (a *App) forceStopAllSpinners() {
	for spinnerId := range activeSpinners {
		delete(activeSpinners, spinnerId)
	}
	a.spinnerControl.Suspend()
	a.spinnerActive = false
	tui.GetGlobalSpinnerState().SetActive(false)
	a.statusZone.ClearSpinner()
}

// Update handles messages and updates the application state
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer logging.LogPanic()

	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case msgtypes.SpinnerTickMsg:
		a.spinnerView = string(msg)
		if a.Ready() && a.spinnerActive {
			a.statusZone.SetSpinner(string(msg))
		}
		return a, nil

	case msgtypes.SpinnerStartMsg:
		a.spinnerControl.Resume()
		a.spinnerActive = true
		if msg.SpinnerId != 0 {
			activeSpinners[msg.SpinnerId] = msg.SpinnerTs
		}
		tui.GetGlobalSpinnerState().SetActive(true)
		a.ClearError()
		if a.spinnerView != "" {
			a.statusZone.SetSpinner(a.spinnerView)
		}
		a.updateSizes()
		return a, nil

	case msgtypes.SpinnerStopMsg:
		spinnerStart, exists := activeSpinners[msg.SpinnerId]
		if !exists {
			if len(activeSpinners) == 0 {
				a.spinnerControl.Suspend()
				a.spinnerActive = false
				tui.GetGlobalSpinnerState().SetActive(false)
				a.statusZone.ClearSpinner()
			}
			return a, nil
		}

		// Keep the spinner up for a minimum duration so fast operations do
		// not flash it
		duration := time.Since(spinnerStart)
		minDuration := 300 * time.Millisecond
		if duration < minDuration {
			spinnerId := msg.SpinnerId
			cmd = tea.Tick(minDuration-duration, func(time.Time) tea.Msg {
				return msgtypes.SpinnerStopMsg{SpinnerId: spinnerId}
			})
			return a, cmd
		}

		delete(activeSpinners, msg.SpinnerId)
		if len(activeSpinners) == 0 {
			a.spinnerControl.Suspend()
			a.spinnerActive = false
			tui.GetGlobalSpinnerState().SetActive(false)
			a.updateSizes()
			a.statusZone.ClearSpinner()
		}
		return a, nil

	case msgtypes.ErrorMsg:
		errorMessage := "Error desconocido"
		if msg.Err != nil {
			errorMessage = msg.Err.Error()
		}
		a.SetError(errorMessage)
		a.auxlog.Printf("Application error: %v", msg.Err)
		return a, nil

	case msgtypes.ClearErrorMsg:
		a.ClearError()
		return a, nil

	case msgtypes.InfoMsg:
		return a, a.SetInfo(msg.Message)

	case msgtypes.ClearInfoMsg:
		a.ClearInfo()
		return a, nil

	case msgtypes.InfoDebounceMsg:
		// Only the tag of the latest info message may clear it
		if msg.Tag == a.infoTag {
			a.ClearInfo()
		}
		return a, nil

	case msgtypes.SetScreenMsg:
		a.ClearError()
		cmd = a.workingZone.SetScreen(msg.Screen)
		a.updateSizes()
		return a, cmd

	case msgtypes.EditPersonaMsg:
		if form, ok := a.workingZone.GetScreen("form").(*widgets.PersonaForm); ok {
			form.LoadDraft(msg.Draft)
		}
		a.ClearError()
		return a, a.workingZone.SetScreen("form")

	case msgtypes.InitProfileMsg:
		if msg.Client != nil {
			a.workingZone.SetRest(msg.Client)
			a.auxlog.Println("[InitProfileMsg] - service clients rewired")
		}
		return a, a.profile.SetData

	case msgtypes.UpdateProfileMsg:
		return a, msgtypes.ProcessWithSpinner(a.profile.SetData)

	case msgtypes.TickerUpdateProfileMsg:
		return a, func() tea.Msg {
			return a.profile.SetDataWithContext(a.ctx)
		}

	case msgtypes.ProfileDataMsg:
		a.profile.UpdateData(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.auxlog.Println("Ctrl+C pressed, initiating shutdown")
			a.forceStopAllSpinners()
			return a, tea.Quit
		case ":":
			a.ClearError()
			return a, a.workingZone.SetScreen("menu")
		case "esc":
			a.ClearError()
			current := a.workingZone.CurrentScreen()
			if modal, ok := current.(modalScreen); ok && modal.InModal() {
				break // let the screen close its prompt
			}
			if current != nil && current.GetName() != "menu" {
				return a, a.workingZone.SetScreen("menu")
			}
			return a, nil
		}
	}

	cmd = a.workingZone.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View renders the entire application
func (a *App) View() string {
	defer logging.LogPanic()

	if !a.allZonesReady() || !a.Ready() {
		return a.renderSplashScreen()
	}

	// One-time transition out of the splash screen
	if !a.initialTransition {
		if len(activeSpinners) == 0 {
			a.spinnerControl.Suspend()
			a.spinnerActive = false
			a.spinnerView = ""
			a.statusZone.ClearSpinner()
		}
		a.initialTransition = true
	}

	return a.renderNormal()
}

func (a *App) renderNormal() string {
	topZones := a.renderTopZones()

	remainingHeight := a.height - lipgloss.Height(topZones)

	workingArea := a.workingZone.View()
	if remainingHeight > 0 {
		workingArea = lipgloss.NewStyle().
			Height(remainingHeight).
			Width(a.width).
			Render(workingArea)
	}

	return lipgloss.JoinVertical(lipgloss.Top, topZones, workingArea)
}

// Ready returns whether the App is ready to be displayed
func (a *App) Ready() bool {
	return a.ready
}

// SetError sets an error message to be displayed in the status zone
func (a *App) SetError(msg string) {
	a.statusZone.SetError(msg)
	a.updateSizes()
}

// ClearError clears any error message from the status zone
func (a *App) ClearError() {
	a.statusZone.Clear()
	a.updateSizes()
}

// SetInfo shows an info message that auto-clears after a debounce delay.
func (a *App) SetInfo(msg string) tea.Cmd {
	a.infoTag++
	currentTag := a.infoTag

	a.statusZone.SetInfo(msg)
	a.updateSizes()

	return tea.Tick(2*time.Second, func(_ time.Time) tea.Msg {
		return msgtypes.InfoDebounceMsg{Tag: currentTag}
	})
}

// ClearInfo clears any info message from the status zone
func (a *App) ClearInfo() {
	a.statusZone.ClearInfo()
	a.updateSizes()
}

// renderTopZones lays out the header zones, dropping zones as the terminal
// narrows.
func (a *App) renderTopZones() string {
	var topZonesView string

	if a.width < 61 {
		logoView := lipgloss.NewStyle().
			Width(a.width).
			Height(HeaderHeight).
			Align(lipgloss.Right, lipgloss.Center).
			Render(a.logo.View())

		topZonesView = lipgloss.NewStyle().Width(a.width).Render(logoView)
	} else if a.width < 91 {
		// Profile and logo only
		profileWidth := a.width / 2
		logoWidth := a.width - profileWidth

		profileView := lipgloss.NewStyle().
			Width(profileWidth).
			Height(HeaderHeight).
			Render(a.profile.View())

		logoView := lipgloss.NewStyle().
			Width(logoWidth).
			Height(HeaderHeight).
			Align(lipgloss.Right, lipgloss.Center).
			Render(a.logo.View())

		topZones := lipgloss.JoinHorizontal(lipgloss.Top, profileView, logoView)
		topZonesView = lipgloss.NewStyle().Width(a.width).Render(topZones)
	} else {
		// Profile 25%, keybindings 50%, logo 25%
		profileWidth := a.width / 4
		keybindingsWidth := a.width / 2
		logoWidth := a.width - profileWidth - keybindingsWidth

		profileView := lipgloss.NewStyle().
			Width(profileWidth).
			Height(HeaderHeight).
			Render(a.profile.View())

		keybindingsView := lipgloss.NewStyle().
			Width(keybindingsWidth).
			Height(HeaderHeight).
			Render(a.keybindings.View())

		logoView := lipgloss.NewStyle().
			Width(logoWidth).
			Height(HeaderHeight).
			Align(lipgloss.Right, lipgloss.Center).
			Render(a.logo.View())

		topZones := lipgloss.JoinHorizontal(lipgloss.Top, profileView, keybindingsView, logoView)
		topZonesView = lipgloss.NewStyle().Width(a.width).MaxHeight(HeaderHeight).Render(topZones)
	}

	statusView := a.statusZone.View()
	if statusView != "" {
		topZonesView = lipgloss.JoinVertical(lipgloss.Top, topZonesView, statusView)
	}

	return topZonesView
}

// updateSizes updates the sizes of child components
func (a *App) updateSizes() {
	if a.width == 0 || a.height == 0 {
		return
	}

	profileWidth := a.width / 4
	keybindingsWidth := a.width / 2
	logoWidth := a.width - profileWidth - keybindingsWidth

	a.statusZone.SetSize(a.width, 0) // height is content-driven

	topZones := a.renderTopZones()
	workingHeight := a.height - lipgloss.Height(topZones)
	if workingHeight < 0 {
		workingHeight = 0
	}

	a.profile.SetSize(profileWidth, HeaderHeight)
	a.keybindings.SetSize(keybindingsWidth, HeaderHeight)
	a.logo.SetSize(logoWidth, HeaderHeight)
	a.workingZone.SetSize(a.width, workingHeight)
}

func (a *App) allZonesReady() bool {
	return a.profile.Ready() &&
		a.keybindings.Ready() &&
		a.logo.Ready() &&
		a.workingZone.Ready() &&
		a.statusZone.Ready()
}

// renderSplashScreen renders the splash screen with spinner
func (a *App) renderSplashScreen() string {
	leftMargin := "    "

	versionContent := ""
	if a.appVersion != "" {
		versionStyle := lipgloss.NewStyle().
			Foreground(tui.LightGrey)
		versionContent = leftMargin + versionStyle.Render("version: "+a.appVersion)
	}

	spinnerContent := ""
	if a.spinnerView != "" {
		spinnerContent = leftMargin + a.spinnerView
	}

	content := ""
	if versionContent != "" || spinnerContent != "" {
		reservedLines := 2
		if versionContent != "" {
			reservedLines++
		}
		if spinnerContent != "" {
			reservedLines++
		}

		for i := 0; i < a.height-reservedLines; i++ {
			content += "\n"
		}
		if versionContent != "" {
			content += versionContent + "\n"
		}
		if spinnerContent != "" {
			content += spinnerContent
		}
	}

	return content
}

// Run starts the TUI application
func Run(appVersion string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closeLogger, err := logging.InitGlobalLogger()
	if err != nil {
		return err
	}
	if closeLogger != nil {
		defer closeLogger()
	}

	auxlog := logging.GetAuxLogger()

	db := database.New()
	defer func() {
		auxlog.Println("Closing database connection...")
		if err := db.Close(); err != nil {
			auxlog.Printf("Error closing database: %v", err)
		}
	}()

	ch := make(chan tea.Msg)
	spinnerCtrl, unsub := SetupSubscriptions(ctx, cancel, ch)
	defer unsub()

	app := NewApp(appVersion, spinnerCtrl, ch)

	// Splash screen spinner starts immediately
	spinnerCtrl.Resume()
	app.spinnerActive = true

	p := tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		// Relay events to model in background
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				p.Send(msg)
			case <-ctx.Done():
				return
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	resultChan := make(chan error, 1)
	go func() {
		// bubbletea has its own panic recovery; log ours too
		defer logging.LogPanic()
		_, err := p.Run()
		resultChan <- err
	}()

	select {
	case err := <-resultChan:
		auxlog.Println("TUI program finished")
		cancel()

		if err != nil {
			auxlog.Printf("TUI program error: %v", err)

			// bubbletea reports internally caught panics through this error
			if err.Error() == "program was killed: program experienced a panic" {
				if personixDir, dirErr := logging.GetPersonixDir(); dirErr == nil {
					panicLogPath := filepath.Join(personixDir, "logs", "panic.log")
					if f, fileErr := os.OpenFile(panicLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); fileErr == nil {
						timestamp := time.Now().Format("2006-01-02 15:04:05")
						fmt.Fprintf(f, "\nPANIC at %s (caught by bubbletea)\nError: %v\n\n", timestamp, err)
						f.Close()
						fmt.Fprintf(os.Stderr, "\nPanic details saved to: %s\n\n", panicLogPath)
					}
				}
			}
		}
		return err

	case <-sigChan:
		auxlog.Println("Received interrupt signal, shutting down...")
		cancel()
		p.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		select {
		case err := <-resultChan:
			return err
		case <-time.After(2 * time.Second):
			auxlog.Println("TUI program shutdown timeout, forcing exit")
			return nil
		}
	}
}
