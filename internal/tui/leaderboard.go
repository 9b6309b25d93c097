package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecoshare/internal/impact"
)

// Layout defaults used before the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 24

	// headerRows is the space reserved for the summary box and help line.
	headerRows   = 14
	minTableRows = 3
)

const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
	keyEnter = "enter"
)

// ViewState is the screen the leaderboard is showing.
type ViewState int

const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateQuitting
)

// LeaderboardModel is the bubbletea model for `summary community --tui`.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View.
type LeaderboardModel struct {
	report   impact.CommunityReport
	table    table.Model
	state    ViewState
	selected int
	width    int
	height   int
}

// NewLeaderboardModel builds the model over report.
func NewLeaderboardModel(report impact.CommunityReport) LeaderboardModel {
	m := LeaderboardModel{
		report: report,
		state:  ViewStateList,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.table = NewLeaderboardTable(report.TopDonors, m.tableHeight())
	return m
}

// NewLeaderboardTable builds a focused table with one row per donor.
func NewLeaderboardTable(donors []impact.DonorTotal, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},           //nolint:mnd // Column width.
		{Title: "Donor", Width: 24},      //nolint:mnd // Column width.
		{Title: "CO2 (kg)", Width: 12},   //nolint:mnd // Column width.
		{Title: "Waste (kg)", Width: 12}, //nolint:mnd // Column width.
		{Title: "Meals", Width: 8},       //nolint:mnd // Column width.
		{Title: "Donations", Width: 10},  //nolint:mnd // Column width.
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(LeaderboardRows(donors)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// LeaderboardRows converts ranked donors to table rows.
func LeaderboardRows(donors []impact.DonorTotal) []table.Row {
	rows := make([]table.Row, len(donors))
	for i, d := range donors {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			donorName(d.Donor),
			impact.FormatFloat(d.CO2Kg, 2),
			impact.FormatFloat(d.WasteKg, 2),
			impact.FormatNumber(int64(d.Meals)),
			strconv.Itoa(d.Count),
		}
	}
	return rows
}

func donorName(id impact.DonorID) string {
	if id == "" {
		return "(anonymous)"
	}
	return string(id)
}

// Init implements tea.Model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch m.state {
	case ViewStateDetail:
		switch key.String() {
		case keyEsc:
			m.state = ViewStateList
			return m, nil
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, nil
	case ViewStateQuitting:
		return m, nil
	default:
		switch key.String() {
		case keyQuit, keyCtrlC, keyEsc:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.report.TopDonors) {
				m.selected = cursor
				m.state = ViewStateDetail
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(key)
		return m, cmd
	}
}

// View implements tea.Model.
func (m LeaderboardModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderCommunitySummary(m.report.TotalImpact, m.width))
	b.WriteString("\n\n")

	if m.state == ViewStateDetail {
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("esc: back • q: quit"))
		return b.String()
	}

	b.WriteString(HeaderStyle.Render("TOP DONORS"))
	b.WriteString("\n")
	if len(m.report.TopDonors) == 0 {
		b.WriteString(InfoStyle.Render("No donors yet."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("↑/↓: navigate • enter: details • q: quit"))
	return b.String()
}

func (m LeaderboardModel) renderDetail() string {
	d := m.report.TopDonors[m.selected]

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("#%d %s", m.selected+1, donorName(d.Donor))))
	b.WriteString("\n")
	writeMetric(&b, "CO2 saved", impact.FormatFloat(d.CO2Kg, 2)+" kg")
	writeMetric(&b, "Waste prevented", impact.FormatFloat(d.WasteKg, 2)+" kg")
	writeMetric(&b, "Meals provided", impact.FormatNumber(int64(d.Meals)))
	writeMetric(&b, "Donations", strconv.Itoa(d.Count))

	if total := m.report.TotalImpact.TotalCO2SavedKg; total > 0 {
		share := d.CO2Kg / total * impact.PercentageMultiplier
		b.WriteString(LabelStyle.Render("Share of CO2:      "))
		b.WriteString(ProgressBar(share, progressBarWidth))
		b.WriteString("\n")
	}
	return BoxStyle.Width(m.width - borderPadding).Render(strings.TrimRight(b.String(), "\n"))
}

// State returns the current view state.
func (m LeaderboardModel) State() ViewState {
	return m.state
}

func (m LeaderboardModel) tableHeight() int {
	return max(m.height-headerRows, minTableRows)
}
