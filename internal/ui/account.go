package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/model"
	"stockroom/internal/util"
)

const (
	pictureWidth  = 32
	pictureHeight = 16
)

// AccountModel shows the account settings and the public profile.
type AccountModel struct {
	account    model.Account
	profile    model.Profile
	picture    string
	pictureErr string
	now        time.Time
}

// NewAccountModel creates the account screen. The profile picture is
// rendered once here.
func NewAccountModel(account model.Account, profile model.Profile, caps TerminalCapabilities, now time.Time) *AccountModel {
	m := &AccountModel{account: account, profile: profile, now: now}
	if profile.PicturePath != "" {
		art, err := RenderPicture(profile.PicturePath, caps, pictureWidth, pictureHeight)
		if err != nil {
			m.pictureErr = err.Error()
		} else {
			m.picture = art
		}
	}
	return m
}

// View renders both panels side by side.
func (m *AccountModel) View(width, height int) string {
	half := max(30, (width-6)/2)

	var dob string
	if !m.account.DateOfBirth.IsZero() {
		dob = util.FormatDate(m.account.DateOfBirth) + HelpDescStyle.Render("  ("+util.FormatAgo(m.account.DateOfBirth, m.now)+")")
	}
	account := LabelStyle.Render("Account") + "\n\n" +
		renderField("Name", m.account.Name) +
		renderField("Date of birth", dob) +
		"\n" + HelpDescStyle.Render("e to edit")

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Profile"))
	b.WriteString("\n\n")
	switch {
	case m.picture != "":
		b.WriteString(m.picture)
		b.WriteString("\n")
	case m.pictureErr != "":
		b.WriteString(ErrorStyle.Render(m.pictureErr))
		b.WriteString("\n")
	}
	b.WriteString(renderField("Name", m.profile.FullName()))
	b.WriteString(renderField("Bio", m.profile.Bio))
	b.WriteString(renderField("Emails", strings.Join(m.profile.Emails, ", ")))
	b.WriteString(renderField("Picture", m.profile.PicturePath))
	b.WriteString("\n")
	b.WriteString(HelpDescStyle.Render("P to edit"))

	return lipgloss.NewStyle().MaxHeight(height).Render(lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Width(half).Render(account),
		PanelStyle.Width(half).Render(b.String()),
	))
}
