package tui

import (
	"context"
	"fmt"
	"strings"

	"personix/internal/database"
	log "personix/internal/logging"
	"personix/internal/msgtypes"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ProfileZone shows the active connection profile and what is known about
// the remote record service.
type ProfileZone struct {
	ready         bool
	width, height int
	profileName   string
	endpoint      string
	logEndpoint   string
	queryEndpoint string
	apiVersion    string
	compatible    bool
	db            *database.Service
	ctx           context.Context
}

// NewProfileZone creates a new profile zone
func NewProfileZone(db *database.Service, ctx context.Context) *ProfileZone {
	zone := &ProfileZone{
		apiVersion: "n/a",
		compatible: true,
		db:         db,
		ctx:        ctx,
		ready:      true,
	}

	activeProfile, err := db.GetActiveProfile()
	if err != nil {
		log.Error("Error getting active profile", zap.Error(err))
	} else if activeProfile != nil {
		zone.applyProfile(activeProfile)
	}

	return zone
}

func (p *ProfileZone) Init() {}

func (p *ProfileZone) applyProfile(profile *database.Profile) {
	p.profileName = profile.ProfileName()
	p.endpoint = profile.Endpoint
	p.logEndpoint = profile.LogEndpoint
	p.queryEndpoint = profile.QueryEndpoint
}

// SetData refreshes the zone from the active profile and fetches the remote
// service's declared contract version.
func (p *ProfileZone) SetData() tea.Msg {
	return p.SetDataWithContext(p.ctx)
}

func (p *ProfileZone) SetDataWithContext(ctx context.Context) tea.Msg {
	auxlog := log.GetAuxLogger()

	activeProfile, err := p.db.GetActiveProfile()
	if err != nil {
		log.Error("Failed to get active profile", zap.Error(err))
		return nil
	}
	if activeProfile == nil {
		auxlog.Println("ProfileZone.SetData: no active profile")
		p.profileName = ""
		return nil
	}

	p.applyProfile(activeProfile)
	auxlog.Printf("ProfileZone.SetData: loaded profile: %s", activeProfile.ProfileName())

	personixDir, _ := log.GetPersonixDir()
	rest, err := activeProfile.RestFromProfile(personixDir)
	if err != nil {
		log.Error("Failed to build clients from profile", zap.Error(err))
		return msgtypes.ProfileDataMsg{APIVersion: "n/a", Compatible: true}
	}

	doc, err := rest.Schema.Load(ctx)
	if err != nil {
		auxlog.Printf("ProfileZone.SetData: contract fetch failed: %v", err)
		return msgtypes.ProfileDataMsg{APIVersion: "n/a", Compatible: true}
	}

	apiVersion := "n/a"
	if doc.Info != nil && doc.Info.Version != "" {
		apiVersion = doc.Info.Version
	}
	compatible := rest.Schema.CheckVersion(ctx) == nil

	return msgtypes.ProfileDataMsg{APIVersion: apiVersion, Compatible: compatible}
}

// UpdateData applies refreshed service metadata to the zone
func (p *ProfileZone) UpdateData(data msgtypes.ProfileDataMsg) {
	p.apiVersion = data.APIVersion
	p.compatible = data.Compatible
	log.Debug("Profile zone data updated",
		zap.String("api_version", p.apiVersion),
		zap.Bool("compatible", p.compatible))
}

// SetSize sets the dimensions of the profile zone
func (p *ProfileZone) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the profile zone
func (p *ProfileZone) View() string {
	if p.width == 0 || p.profileName == "" {
		return ""
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(LightGrey).
		Width(12)

	valueStyle := lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	lines := []string{
		fmt.Sprintf("%s %s",
			keyStyle.Render("Profile:"),
			valueStyle.Render(p.profileName)),
		fmt.Sprintf("%s %s",
			keyStyle.Render("Records:"),
			valueStyle.Render(p.endpoint)),
	}
	if p.logEndpoint != "" {
		lines = append(lines, fmt.Sprintf("%s %s",
			keyStyle.Render("Logs:"),
			valueStyle.Render(p.logEndpoint)))
	}
	if p.queryEndpoint != "" {
		lines = append(lines, fmt.Sprintf("%s %s",
			keyStyle.Render("Queries:"),
			valueStyle.Render(p.queryEndpoint)))
	}

	versionText := p.apiVersion
	if !p.compatible {
		versionText += " (unsupported)"
	}
	lines = append(lines, fmt.Sprintf("%s %s",
		keyStyle.Render("API ver:"),
		valueStyle.Render(versionText)))

	return strings.Join(lines, "\n")
}

// Ready returns whether the profile zone is ready to be displayed
func (p *ProfileZone) Ready() bool {
	return p.ready
}
