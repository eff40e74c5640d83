package widgets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"personix/internal/colors"
	"personix/internal/database"
	log "personix/internal/logging"
	"personix/internal/msgtypes"
	"personix/internal/tui/widgets/common"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type profileMode int

const (
	profileModeList profileMode = iota
	profileModeCreate
	profileModeConfirmDelete
)

// Profiles manages saved connection profiles. Activating a profile rebuilds
// the service clients every other screen talks through.
type Profiles struct {
	width, height int
	ctx           context.Context
	db            *database.Service

	mode     profileMode
	profiles []database.Profile
	cursor   int

	form     *common.Form
	alias    *common.TextField
	endpoint *common.TextField
	logURL   *common.TextField
	queryURL *common.TextField
	timeout  *common.TextField
}

// NewProfiles creates the profiles screen.
func NewProfiles(ctx context.Context, db *database.Service) *Profiles {
	p := &Profiles{ctx: ctx, db: db}
	p.buildForm()
	p.reload()
	return p
}

func (p *Profiles) buildForm() {
	p.alias = common.NewTextField("Alias", "nombre corto", false)
	p.endpoint = common.NewTextField("Endpoint de registros", "http://localhost:8000/api", true)
	p.logURL = common.NewTextField("Endpoint de logs", "opcional", false)
	p.queryURL = common.NewTextField("Endpoint de consultas", "opcional", false)
	p.timeout = common.NewTextField("Timeout (segundos)", "30", false).WithHint("[0 = predeterminado]")
	p.form = common.NewForm(p.alias, p.endpoint, p.logURL, p.queryURL, p.timeout)
}

func (p *Profiles) reload() {
	profiles, err := p.db.GetAllProfiles()
	if err != nil {
		log.Error("Failed to load profiles", zap.Error(err))
		return
	}
	p.profiles = profiles
	if p.cursor >= len(profiles) {
		p.cursor = 0
	}
}

func (p *Profiles) GetName() string { return "profiles" }

// InModal reports whether the screen is in a sub-mode that consumes esc.
func (p *Profiles) InModal() bool { return p.mode != profileModeList }

func (p *Profiles) Title() string { return "Perfiles" }

func (p *Profiles) Init() tea.Msg {
	p.reload()
	return nil
}

func (p *Profiles) Reset() {
	p.mode = profileModeList
	p.buildForm()
	p.reload()
}

func (p *Profiles) GetKeyBindings() []common.KeyBinding {
	switch p.mode {
	case profileModeCreate:
		return append(common.GenericKeyBindings(),
			common.KeyBinding{Key: "tab", Desc: "siguiente campo"},
			common.KeyBinding{Key: "ctrl+s", Desc: "guardar y activar"},
		)
	case profileModeConfirmDelete:
		return append(common.GenericKeyBindings(),
			common.KeyBinding{Key: "y", Desc: "confirmar eliminación"},
			common.KeyBinding{Key: "n", Desc: "cancelar"},
		)
	default:
		return append(common.GenericKeyBindings(),
			common.KeyBinding{Key: "↑/↓", Desc: "mover"},
			common.KeyBinding{Key: "enter", Desc: "activar"},
			common.KeyBinding{Key: "n", Desc: "nuevo perfil"},
			common.KeyBinding{Key: "ctrl+d", Desc: "eliminar"},
		)
	}
}

func (p *Profiles) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles messages while the profiles screen is active.
func (p *Profiles) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.mode == profileModeCreate {
			return p.form.UpdateFocused(msg)
		}
		return nil
	}

	switch p.mode {
	case profileModeCreate:
		switch keyMsg.String() {
		case "tab", "down":
			p.form.NextInput()
			return nil
		case "shift+tab", "up":
			p.form.PrevInput()
			return nil
		case "ctrl+s":
			return p.saveProfile()
		case "esc":
			p.mode = profileModeList
			p.buildForm()
			return nil
		}
		return p.form.UpdateFocused(keyMsg)

	case profileModeConfirmDelete:
		switch keyMsg.String() {
		case "y", "Y":
			return p.deleteSelected()
		case "n", "N", "esc":
			p.mode = profileModeList
		}
		return nil

	default:
		switch keyMsg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.profiles)-1 {
				p.cursor++
			}
		case "enter":
			return p.activateSelected()
		case "n":
			p.mode = profileModeCreate
			p.buildForm()
		case "ctrl+d":
			if len(p.profiles) > 0 {
				p.mode = profileModeConfirmDelete
			}
		}
		return nil
	}
}

func (p *Profiles) saveProfile() tea.Cmd {
	endpoint := p.endpoint.Value()
	if endpoint == "" {
		return func() tea.Msg {
			return msgtypes.ErrorMsg{Err: fmt.Errorf("el endpoint de registros es obligatorio")}
		}
	}

	var timeoutSeconds int64
	if t := p.timeout.Value(); t != "" {
		parsed, err := strconv.ParseInt(t, 10, 64)
		if err != nil || parsed < 0 {
			return func() tea.Msg {
				return msgtypes.ErrorMsg{Err: fmt.Errorf("el timeout debe ser un número de segundos")}
			}
		}
		timeoutSeconds = parsed
	}

	profile := &database.Profile{
		Alias:          p.alias.Value(),
		Endpoint:       endpoint,
		LogEndpoint:    p.logURL.Value(),
		QueryEndpoint:  p.queryURL.Value(),
		TimeoutSeconds: timeoutSeconds,
	}

	if err := p.db.CreateProfileAsActive(profile); err != nil {
		return func() tea.Msg { return msgtypes.ErrorMsg{Err: err} }
	}

	p.mode = profileModeList
	p.buildForm()
	p.reload()

	return p.announceActivation(profile)
}

func (p *Profiles) activateSelected() tea.Cmd {
	if len(p.profiles) == 0 {
		return nil
	}
	profile := p.profiles[p.cursor]
	if err := p.db.SetActiveProfile(profile.ID); err != nil {
		return func() tea.Msg { return msgtypes.ErrorMsg{Err: err} }
	}
	p.reload()
	return p.announceActivation(&profile)
}

// announceActivation rebuilds the service clients for the profile and
// broadcasts them to the rest of the app.
func (p *Profiles) announceActivation(profile *database.Profile) tea.Cmd {
	personixDir, _ := log.GetPersonixDir()
	rest, err := profile.RestFromProfile(personixDir)
	if err != nil {
		return func() tea.Msg { return msgtypes.ErrorMsg{Err: err} }
	}
	name := profile.ProfileName()
	return tea.Batch(
		func() tea.Msg { return msgtypes.InitProfileMsg{Client: rest} },
		func() tea.Msg { return msgtypes.UpdateProfileMsg{} },
		func() tea.Msg {
			return msgtypes.InfoMsg{Message: fmt.Sprintf("Perfil %s activado", name)}
		},
	)
}

func (p *Profiles) deleteSelected() tea.Cmd {
	if len(p.profiles) == 0 {
		p.mode = profileModeList
		return nil
	}
	profile := p.profiles[p.cursor]
	if err := p.db.DeleteProfile(profile.ID); err != nil {
		p.mode = profileModeList
		return func() tea.Msg { return msgtypes.ErrorMsg{Err: err} }
	}
	p.mode = profileModeList
	p.reload()
	name := profile.ProfileName()
	return func() tea.Msg {
		return msgtypes.InfoMsg{Message: fmt.Sprintf("Perfil %s eliminado", name)}
	}
}

// View renders the profiles screen
func (p *Profiles) View() string {
	switch p.mode {
	case profileModeCreate:
		return p.form.View() + "\n\n" + lipgloss.NewStyle().
			Foreground(colors.DimColor).
			Render("ctrl+s guarda el perfil y lo activa")
	case profileModeConfirmDelete:
		name := ""
		if p.cursor < len(p.profiles) {
			name = p.profiles[p.cursor].ProfileName()
		}
		warnStyle := lipgloss.NewStyle().Foreground(colors.WarningColor).Bold(true)
		return p.listView() + "\n" + warnStyle.Render(fmt.Sprintf("¿Eliminar el perfil %s? (y/n)", name))
	default:
		return p.listView()
	}
}

func (p *Profiles) listView() string {
	if len(p.profiles) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(colors.DimColor)
		return dimStyle.Render("Sin perfiles. Presiona 'n' para crear el primero.")
	}

	activeStyle := lipgloss.NewStyle().Foreground(colors.ProfileActiveColor).Bold(true)
	cursorStyle := lipgloss.NewStyle().Foreground(colors.DeepBlue).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(colors.LighterGrey)

	var rows []string
	for i, profile := range p.profiles {
		cursor := "  "
		if i == p.cursor {
			cursor = cursorStyle.Render("> ")
		}
		marker := "  "
		if profile.Active {
			marker = activeStyle.Render("● ")
		}
		line := fmt.Sprintf("%s (%s)", profile.ProfileName(), profile.Endpoint)
		if profile.Active {
			rows = append(rows, cursor+marker+activeStyle.Render(line))
		} else {
			rows = append(rows, cursor+marker+normalStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}
