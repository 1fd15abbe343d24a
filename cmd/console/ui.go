package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cardshow/deal-engine/pkg/encounter"
	"github.com/cardshow/deal-engine/pkg/milestone"
	"github.com/cardshow/deal-engine/pkg/session"
	"github.com/cardshow/deal-engine/pkg/zone"
)

const PlaceHolderText = "Type a command, e.g. /go dollar_boxes ..."

var moneyPrinter = message.NewPrinter(language.English)

// money renders a dollar amount with thousands grouping.
func money(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *session.Session
	logViewport  viewport.Model
	sideViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	// lines is the scrollback of the negotiation log.
	lines []string

	// historySeen tracks how much of the encounter history has already
	// been copied into lines.
	historySeen int

	// Quit confirmation state
	showQuitModal bool
}

// actionResultMsg carries the result of any API call back into Update.
type actionResultMsg struct {
	session *session.Session

	// extra lines to print under the engine's own log output
	notes []string

	// newEncounter resets the history cursor
	newEncounter bool

	err error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	partnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, s *session.Session) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	sideVp := viewport.New(20, 20)

	ui := ConsoleUI{
		config:       cfg,
		client:       client,
		session:      s,
		textarea:     ta,
		logViewport:  logVp,
		sideViewport: sideVp,
	}
	ui.lines = append(ui.lines,
		fmt.Sprintf("Welcome to the show floor, %s.", s.Player.Name),
		fmt.Sprintf("You're running a %s build with %s in your pocket.",
			s.Player.Archetype.DisplayName(), money(s.Player.Cash)),
		"Type /help for the full command list, /zones to see where to go.")
	return ui
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		svCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth := int(float64(m.width)*0.66) - 4
		sideWidth := m.width - logWidth - 6

		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 7
		m.sideViewport.Width = sideWidth - 2
		m.sideViewport.Height = m.height - 4
		m.textarea.SetWidth(logWidth - 4)

		m.ready = true
		m.writeLogContent()
		m.sideViewport.SetContent(m.writeSidePanel())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.lines = append(m.lines, userStyle.Render("> "+input))
			m.writeLogContent()
			return m.handleCommand(input)
		}

	case actionResultMsg:
		m.loading = false
		m.applyResult(msg)
		m.writeLogContent()
		m.sideViewport.SetContent(m.writeSidePanel())
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.sideViewport, svCmd = m.sideViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, svCmd)
}

// applyResult folds an API result into the model: new session state, new
// engine log lines, then any command-specific notes.
func (m *ConsoleUI) applyResult(msg actionResultMsg) {
	if msg.err != nil {
		m.lines = append(m.lines, errorStyle.Render("Error: "+msg.err.Error()))
		return
	}

	if msg.session != nil {
		m.session = msg.session
	}
	if msg.newEncounter {
		m.historySeen = 0
	}

	if e := m.session.Encounter; e != nil {
		start := m.historySeen
		if start > len(e.History) {
			start = len(e.History)
		}
		for _, line := range e.History[start:] {
			m.lines = append(m.lines, partnerStyle.Render(line))
		}
		m.historySeen = len(e.History)
	}

	m.lines = append(m.lines, msg.notes...)
}

func (m *ConsoleUI) writeLogContent() {
	logWidth := m.logViewport.Width - 6
	if logWidth < 20 {
		logWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("THE NATIONAL - DEAL FLOOR") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", logWidth)) + "\n\n")

	for _, line := range m.lines {
		content.WriteString(wordwrap.String(line, logWidth) + "\n")
	}

	if m.loading {
		content.WriteString("\n" + goodStyle.Render("...") + "\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

// writeSidePanel renders the ledger and the live encounter status.
func (m *ConsoleUI) writeSidePanel() string {
	p := m.session.Player

	var content strings.Builder
	content.WriteString(titleStyle.Render("LEDGER") + "\n\n")
	content.WriteString(fmt.Sprintf("%s (%s)\n", p.Name, p.Archetype.DisplayName()))
	content.WriteString(fmt.Sprintf("Cash: %s\n", money(p.Cash)))
	content.WriteString(fmt.Sprintf("Profit: %s of %s\n", money(p.Profit), money(p.Goals.ProfitTarget)))
	content.WriteString(fmt.Sprintf("Level %d  (%d XP)\n", p.Level, p.XP))
	content.WriteString(fmt.Sprintf("Skill: %.1f  Stamina: %d\n", p.NegotiationSkill, p.Stamina))
	content.WriteString(fmt.Sprintf("Day %d, %s\n", p.Day, p.TimeBlock))
	content.WriteString(fmt.Sprintf("Hunting: %s\n", p.Goals.TargetCard))

	content.WriteString("\n" + titleStyle.Render("COLLECTION") + "\n")
	if len(p.Collection) == 0 {
		content.WriteString("Empty so far.\n")
	}
	for i, c := range p.Collection {
		content.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, c.Name, money(c.TrueValue)))
	}

	if e := m.session.Encounter; e != nil && e.Status == encounter.StatusActive {
		content.WriteString("\n" + titleStyle.Render("TABLE") + "\n")
		content.WriteString(fmt.Sprintf("%s in %s, %s\n", e.PartnerType.DisplayName(), e.Zone.DisplayName(), e.Mood))
		content.WriteString(fmt.Sprintf("Round %d, patience %d\n", e.Round, e.Patience))
		content.WriteString("Resistance:\n")
		content.WriteString(renderBar(e.Resistance, e.MaxResistance, 16) + "\n")
		for i, c := range e.Cards {
			content.WriteString(fmt.Sprintf("%d. %s - ask %s\n", i+1, c.Name, money(c.AskPrice)))
		}
	}

	content.WriteString("\n" + titleStyle.Render("KEYS") + "\n")
	content.WriteString("Ctrl+C: quit\n")
	content.WriteString("/help: commands\n")
	content.WriteString("/copy: copy session ID\n")

	return content.String()
}

func renderBar(current, max, width int) string {
	if max <= 0 {
		max = 1
	}
	if current < 0 {
		current = 0
	}
	filled := current * width / max
	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return bar.String() + fmt.Sprintf(" %d/%d", current, max)
}

const helpText = `
Commands:
/zones                    List the show floor zones
/go <zone>                Walk into a zone and open an encounter
/stages                   List big stages, influencers and the champion
/stage <id>               Challenge a big stage
/influencer <id>          Challenge an influencer
/champion                 Challenge the National Whale
/rapport /flaws           Persuasion moves
/lowball /comps           More persuasion moves
/offer <amount>           Offer cash for everything on the table
/trade <mine> [cash] for <theirs>   e.g. /trade 1,2 50 for 1
/sell <idx,...>           Ask what they'd pay for your cards
/confirm <idx,...>        Sell those cards at the quoted price
/walk                     Walk away from the table
/copy                     Copy session ID to clipboard
`

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/help":
		m.lines = append(m.lines, titleStyle.Render("Help:")+helpText)

	case "/zones":
		var b strings.Builder
		b.WriteString(titleStyle.Render("Zones:") + "\n")
		for _, z := range zone.Zones {
			b.WriteString(fmt.Sprintf("• %s - %s\n", z, z.DisplayName()))
		}
		m.lines = append(m.lines, b.String())

	case "/stages":
		m.lines = append(m.lines, m.renderMilestones())

	case "/copy":
		if err := clipboard.WriteAll(m.session.ID.String()); err != nil {
			m.lines = append(m.lines, errorStyle.Render("Clipboard error: "+err.Error()))
		} else {
			m.lines = append(m.lines, promptStyle.Render("Session ID copied: "+m.session.ID.String()))
		}

	case "/go":
		if len(args) != 1 {
			m.lines = append(m.lines, errorStyle.Render("Usage: /go <zone>"))
			break
		}
		return m.runAction(true, func() actionResultMsg {
			s, err := startEncounter(m.client, m.config.APIBaseURL, m.session.ID, StartEncounterRequest{Zone: args[0]})
			return actionResultMsg{session: s, newEncounter: true, err: err}
		})

	case "/stage":
		if len(args) != 1 {
			m.lines = append(m.lines, errorStyle.Render("Usage: /stage <id>"))
			break
		}
		return m.runAction(true, func() actionResultMsg {
			s, err := startEncounter(m.client, m.config.APIBaseURL, m.session.ID, StartEncounterRequest{Stage: args[0]})
			return actionResultMsg{session: s, newEncounter: true, err: err}
		})

	case "/influencer":
		if len(args) != 1 {
			m.lines = append(m.lines, errorStyle.Render("Usage: /influencer <id>"))
			break
		}
		return m.runAction(true, func() actionResultMsg {
			s, err := startEncounter(m.client, m.config.APIBaseURL, m.session.ID, StartEncounterRequest{Influencer: args[0]})
			return actionResultMsg{session: s, newEncounter: true, err: err}
		})

	case "/champion":
		return m.runAction(true, func() actionResultMsg {
			s, err := startEncounter(m.client, m.config.APIBaseURL, m.session.ID, StartEncounterRequest{Champion: true})
			return actionResultMsg{session: s, newEncounter: true, err: err}
		})

	case "/rapport", "/flaws", "/lowball", "/comps":
		move := map[string]encounter.Move{
			"/rapport": encounter.MoveBuildRapport,
			"/flaws":   encounter.MovePointOutFlaws,
			"/lowball": encounter.MoveLowballProbe,
			"/comps":   encounter.MoveShowComparables,
		}[cmd]
		return m.runAction(false, func() actionResultMsg {
			_, s, err := persuade(m.client, m.config.APIBaseURL, m.session.ID, string(move))
			return actionResultMsg{session: s, err: err}
		})

	case "/offer":
		if len(args) != 1 {
			m.lines = append(m.lines, errorStyle.Render("Usage: /offer <amount>"))
			break
		}
		amount, err := strconv.ParseFloat(strings.TrimPrefix(args[0], "$"), 64)
		if err != nil || amount <= 0 {
			m.lines = append(m.lines, errorStyle.Render("Offer amount must be a positive number"))
			break
		}
		return m.runAction(false, func() actionResultMsg {
			outcome, s, err := makeOffer(m.client, m.config.APIBaseURL, m.session.ID, amount)
			msg := actionResultMsg{session: s, err: err}
			if err == nil && outcome.Result == encounter.OfferCounter {
				msg.notes = append(msg.notes, goodStyle.Render(
					fmt.Sprintf("They counter at %s.", money(outcome.CounterOffer))))
			}
			return msg
		})

	case "/trade":
		req, err := parseTradeArgs(args)
		if err != nil {
			m.lines = append(m.lines, errorStyle.Render(err.Error()))
			break
		}
		return m.runAction(false, func() actionResultMsg {
			_, s, err := proposeTrade(m.client, m.config.APIBaseURL, m.session.ID, req)
			return actionResultMsg{session: s, err: err}
		})

	case "/sell":
		if len(args) != 1 {
			m.lines = append(m.lines, errorStyle.Render("Usage: /sell <idx,...>"))
			break
		}
		indices, err := parseIndices(args[0])
		if err != nil {
			m.lines = append(m.lines, errorStyle.Render(err.Error()))
			break
		}
		return m.runAction(false, func() actionResultMsg {
			amount, s, err := quoteSale(m.client, m.config.APIBaseURL, m.session.ID, indices)
			msg := actionResultMsg{session: s, err: err}
			if err == nil {
				msg.notes = append(msg.notes, goodStyle.Render(
					fmt.Sprintf("They'd pay %s for that. /confirm %s to sell.", money(amount), args[0])))
			}
			return msg
		})

	case "/confirm":
		if len(args) != 1 {
			m.lines = append(m.lines, errorStyle.Render("Usage: /confirm <idx,...>"))
			break
		}
		indices, err := parseIndices(args[0])
		if err != nil {
			m.lines = append(m.lines, errorStyle.Render(err.Error()))
			break
		}
		return m.runAction(false, func() actionResultMsg {
			_, s, err := confirmSale(m.client, m.config.APIBaseURL, m.session.ID, indices)
			return actionResultMsg{session: s, err: err}
		})

	case "/walk":
		return m.runAction(false, func() actionResultMsg {
			s, err := walkAway(m.client, m.config.APIBaseURL, m.session.ID)
			return actionResultMsg{session: s, err: err}
		})

	default:
		m.lines = append(m.lines, errorStyle.Render("Unknown command. Type /help."))
	}

	m.writeLogContent()
	return m, nil
}

// runAction fires an API call as a tea command and flips the loading state.
func (m ConsoleUI) runAction(newEncounter bool, call func() actionResultMsg) (tea.Model, tea.Cmd) {
	m.loading = true
	m.writeLogContent()
	return m, func() tea.Msg {
		msg := call()
		msg.newEncounter = msg.newEncounter || newEncounter
		return msg
	}
}

func (m ConsoleUI) renderMilestones() string {
	level := m.session.Player.Level

	var b strings.Builder
	b.WriteString(titleStyle.Render("Big Stages:") + "\n")
	for _, st := range milestone.Stages {
		b.WriteString(fmt.Sprintf("• %s - %s, L%d%s%s\n",
			st.ID, st.Name, st.RequiredLevel,
			lockMark(milestone.Unlocked(st.RequiredLevel, level)),
			clearMark(m.session.Player.Stages[st.ID])))
	}
	b.WriteString(titleStyle.Render("Influencers:") + "\n")
	for _, inf := range milestone.Influencers {
		b.WriteString(fmt.Sprintf("• %s - %s, L%d%s%s\n",
			inf.ID, inf.Boss, inf.RequiredLevel,
			lockMark(milestone.Unlocked(inf.RequiredLevel, level)),
			clearMark(m.session.Player.Influencers[inf.ID])))
	}
	champ := milestone.Champion
	b.WriteString(titleStyle.Render("Champion:") + "\n")
	b.WriteString(fmt.Sprintf("• %s - L%d%s%s\n",
		champ.Boss, champ.RequiredLevel,
		lockMark(milestone.Unlocked(champ.RequiredLevel, level)),
		clearMark(m.session.Player.ChampionBeaten)))
	return b.String()
}

func lockMark(unlocked bool) string {
	if unlocked {
		return ""
	}
	return " (locked)"
}

func clearMark(done bool) string {
	if done {
		return " ✓"
	}
	return ""
}

// parseIndices converts a 1-based "1,2,3" selection into 0-based indices.
func parseIndices(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad card number: %q", p)
		}
		indices = append(indices, n-1)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no cards selected")
	}
	return indices, nil
}

// parseTradeArgs parses "/trade <mine> [cash] for <theirs>" arguments.
func parseTradeArgs(args []string) (TradeRequest, error) {
	usage := fmt.Errorf("Usage: /trade <mine> [cash] for <theirs>, e.g. /trade 1,2 50 for 1")

	forAt := -1
	for i, a := range args {
		if strings.EqualFold(a, "for") {
			forAt = i
			break
		}
	}
	if forAt < 1 || forAt == len(args)-1 {
		return TradeRequest{}, usage
	}

	var req TradeRequest

	mine, err := parseIndices(args[0])
	if err != nil {
		return TradeRequest{}, err
	}
	req.OfferedIndices = mine

	if forAt == 2 {
		cash, err := strconv.ParseFloat(strings.TrimPrefix(args[1], "$"), 64)
		if err != nil || cash < 0 {
			return TradeRequest{}, usage
		}
		req.CashAdd = cash
	} else if forAt != 1 {
		return TradeRequest{}, usage
	}

	theirs, err := parseIndices(strings.Join(args[forAt+1:], ","))
	if err != nil {
		return TradeRequest{}, err
	}
	req.WantedIndices = theirs

	return req, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the show?"))
	content.WriteString("\n\n")
	content.WriteString("Your session stays saved on the server.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep dealing"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.66) - 4
	sideWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", logWidth-4)),
			m.textarea.View(),
		),
	)

	sidePanel := sidePanelStyle.Width(sideWidth).Height(m.height - 2).Render(
		m.sideViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, sidePanel)
}
