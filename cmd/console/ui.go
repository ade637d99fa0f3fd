package main

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/item"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

const PlaceHolderText = "Type a /command (try /help)..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	gameState    *state.GameState
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	// Catalog names for rendering inventory slots
	itemNames map[int]string

	logLines []string
}

type eventsResultMsg struct {
	resp *EventsResponse
	err  error
}

type inventoryResultMsg struct {
	resp *InventoryResponse
	err  error
}

type sessionMsg struct {
	gameState *state.GameState
	err       error
}

type narrationMsg struct {
	dialogues []string
	err       error
}

type itemsMsg struct {
	items []*item.Item
	err   error
}

type triggersMsg struct {
	sets map[string]string
	err  error
}

type copiedMsg struct {
	err error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, gs *state.GameState) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		gameState:    gs,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: metaVp,
		itemNames:    make(map[int]string),
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadItems())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - logWidth - 6

		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 6
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(logWidth - 4)

		m.ready = true
		m.writeLogContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.appendLine(userStyle.Render("> ") + input)
			return m.handleCommand(input)
		}

	case eventsResultMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		for _, r := range msg.resp.Reports {
			m.appendLine(formatReport(r))
		}
		return m, m.refreshSession()

	case inventoryResultMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		m.appendInventoryResult(msg.resp)
		return m, m.refreshSession()

	case sessionMsg:
		if msg.err == nil && msg.gameState != nil {
			m.gameState = msg.gameState
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case narrationMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		if len(msg.dialogues) == 0 {
			m.appendLine("No narration queued.")
		}
		for _, d := range msg.dialogues {
			m.appendLine(okStyle.Render("Narration: ") + d)
		}

	case itemsMsg:
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		for _, it := range msg.items {
			m.itemNames[it.ID] = it.Name
		}

	case triggersMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		if len(msg.sets) == 0 {
			m.appendLine("No trigger sets loaded.")
			return m, nil
		}
		m.appendLine(titleStyle.Render("Trigger sets"))
		ids := make([]string, 0, len(msg.sets))
		for id := range msg.sets {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			m.appendLine(fmt.Sprintf("  %s (%s)", id, msg.sets[id]))
		}

	case copiedMsg:
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Clipboard error: " + msg.err.Error()))
		} else {
			m.appendLine("Session ID copied to clipboard.")
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Initializing..."
	}

	logPanel := logPanelStyle.Render(
		m.logViewport.View() + "\n\n" + m.textarea.View(),
	)
	metaPanel := metaPanelStyle.Render(m.metaViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// handleCommand parses a typed /command into an API call.
func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	switch cmd {
	case "help":
		m.appendHelp()
		return m, nil

	case "give", "take":
		if len(args) != 2 {
			m.appendLine(warnStyle.Render(fmt.Sprintf("Usage: /%s <item_id> <count>", cmd)))
			return m, nil
		}
		eventType := event.TypeGiveItem
		if cmd == "take" {
			eventType = event.TypeTakeItem
		}
		return m.dispatch(event.GameEvent{Type: eventType, Param1: args[0], Param2: args[1]})

	case "tag":
		if len(args) != 2 {
			m.appendLine(warnStyle.Render("Usage: /tag <tag_id> <value>"))
			return m, nil
		}
		return m.dispatch(event.GameEvent{Type: event.TypeUpdateTag, Param1: args[0], Param2: args[1]})

	case "narrate":
		if len(args) != 1 {
			m.appendLine(warnStyle.Render("Usage: /narrate <dialogue_id>"))
			return m, nil
		}
		return m.dispatch(event.GameEvent{Type: event.TypePlayNarration, Param1: args[0]})

	case "audio":
		if len(args) < 1 || len(args) > 2 {
			m.appendLine(warnStyle.Render("Usage: /audio <clip> [volume]"))
			return m, nil
		}
		ev := event.GameEvent{Type: event.TypePlayAudio, Param1: args[0]}
		if len(args) == 2 {
			ev.Param2 = args[1]
		}
		return m.dispatch(ev)

	case "scene":
		if len(args) < 1 || len(args) > 2 {
			m.appendLine(warnStyle.Render("Usage: /scene <name> [show_loading]"))
			return m, nil
		}
		ev := event.GameEvent{Type: event.TypeLoadScene, Param1: args[0]}
		if len(args) == 2 {
			ev.Param2 = args[1]
		}
		return m.dispatch(ev)

	case "triggers":
		m.loading = true
		return m, m.loadTriggers()

	case "trigger":
		if len(args) != 1 {
			m.appendLine(warnStyle.Render("Usage: /trigger <filename>"))
			return m, nil
		}
		m.loading = true
		return m, m.fireTrigger(args[0])

	case "use":
		if len(args) != 1 {
			m.appendLine(warnStyle.Render("Usage: /use <item_id>"))
			return m, nil
		}
		itemID, err := strconv.Atoi(args[0])
		if err != nil {
			m.appendLine(warnStyle.Render("Item ID must be an integer"))
			return m, nil
		}
		m.loading = true
		return m, m.runInventoryAction("use", itemID, 1)

	case "inv", "inventory":
		m.appendInventory()
		return m, nil

	case "narration":
		m.loading = true
		return m, m.drainQueue()

	case "copy":
		return m, m.copySessionID()

	case "quit", "exit":
		return m, tea.Quit

	default:
		m.appendLine(warnStyle.Render("Unknown command: /" + cmd + " (try /help)"))
		return m, nil
	}
}

func (m *ConsoleUI) dispatch(ev event.GameEvent) (tea.Model, tea.Cmd) {
	m.loading = true
	client, baseURL, id := m.client, m.config.APIBaseURL, m.gameState.ID
	return *m, func() tea.Msg {
		resp, err := sendEvents(client, baseURL, id, []event.GameEvent{ev})
		return eventsResultMsg{resp: resp, err: err}
	}
}

func (m *ConsoleUI) fireTrigger(filename string) tea.Cmd {
	client, baseURL, id := m.client, m.config.APIBaseURL, m.gameState.ID
	return func() tea.Msg {
		resp, err := fireTriggerSet(client, baseURL, id, filename)
		return eventsResultMsg{resp: resp, err: err}
	}
}

func (m *ConsoleUI) runInventoryAction(action string, itemID, count int) tea.Cmd {
	client, baseURL, id := m.client, m.config.APIBaseURL, m.gameState.ID
	return func() tea.Msg {
		resp, err := inventoryAction(client, baseURL, id, action, itemID, count)
		return inventoryResultMsg{resp: resp, err: err}
	}
}

func (m *ConsoleUI) refreshSession() tea.Cmd {
	client, baseURL, id := m.client, m.config.APIBaseURL, m.gameState.ID
	return func() tea.Msg {
		gs, err := getSession(client, baseURL, id)
		return sessionMsg{gameState: gs, err: err}
	}
}

func (m *ConsoleUI) drainQueue() tea.Cmd {
	client, baseURL, id := m.client, m.config.APIBaseURL, m.gameState.ID
	return func() tea.Msg {
		dialogues, err := drainNarration(client, baseURL, id)
		return narrationMsg{dialogues: dialogues, err: err}
	}
}

func (m *ConsoleUI) loadItems() tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		items, err := listItems(client, baseURL)
		return itemsMsg{items: items, err: err}
	}
}

func (m *ConsoleUI) loadTriggers() tea.Cmd {
	client, baseURL := m.client, m.config.APIBaseURL
	return func() tea.Msg {
		sets, err := listTriggerSets(client, baseURL)
		return triggersMsg{sets: sets, err: err}
	}
}

func (m *ConsoleUI) copySessionID() tea.Cmd {
	id := m.gameState.ID.String()
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(id)}
	}
}

func (m *ConsoleUI) appendLine(line string) {
	m.logLines = append(m.logLines, line)
	m.writeLogContent()
}

func (m *ConsoleUI) appendHelp() {
	m.appendLine(titleStyle.Render("Commands"))
	m.appendLine("  /give <item_id> <count>    give items")
	m.appendLine("  /take <item_id> <count>    take items")
	m.appendLine("  /tag <tag_id> <value>      set a tag")
	m.appendLine("  /narrate <dialogue_id>     queue narration")
	m.appendLine("  /audio <clip> [volume]     play an audio clip")
	m.appendLine("  /scene <name> [loading]    change scene")
	m.appendLine("  /triggers                  list trigger sets")
	m.appendLine("  /trigger <filename>        fire a trigger set")
	m.appendLine("  /use <item_id>             use an item")
	m.appendLine("  /inv                       show inventory")
	m.appendLine("  /narration                 drain queued narration")
	m.appendLine("  /copy                      copy session ID")
	m.appendLine("  /quit                      exit")
}

func (m *ConsoleUI) appendInventory() {
	if m.gameState == nil || m.gameState.Inventory == nil {
		m.appendLine("No inventory.")
		return
	}
	m.appendLine(titleStyle.Render("Inventory"))
	for i, s := range m.gameState.Inventory.Slots {
		if s.Count == 0 {
			m.appendLine(fmt.Sprintf("  [%d] (empty)", i))
			continue
		}
		m.appendLine(fmt.Sprintf("  [%d] %s x%d", i, m.itemName(s.ItemID), s.Count))
	}
}

func (m *ConsoleUI) appendInventoryResult(resp *InventoryResponse) {
	switch resp.Action {
	case "use":
		if resp.Used {
			m.appendLine(okStyle.Render(fmt.Sprintf("Used item. HP is now %d.", resp.HP)))
		} else {
			m.appendLine(warnStyle.Render("Item could not be used."))
		}
	default:
		m.appendLine(okStyle.Render(fmt.Sprintf("%s: %d of %d", resp.Action, resp.Actual, resp.Requested)))
	}
}

func (m *ConsoleUI) itemName(id int) string {
	if name, ok := m.itemNames[id]; ok {
		return name
	}
	return fmt.Sprintf("item %d", id)
}

func formatReport(r event.Report) string {
	switch r.Kind {
	case event.ReportDispatched:
		return okStyle.Render(fmt.Sprintf("[%d] %s: ok", r.Index, r.EventType))
	case event.ReportPartial:
		return warnStyle.Render(fmt.Sprintf("[%d] %s: partial (%d of %d)", r.Index, r.EventType, r.Actual, r.Requested))
	case event.ReportConditionsNotMet:
		return promptStyle.Render(fmt.Sprintf("[%d] %s: conditions not met", r.Index, r.EventType))
	case event.ReportInsufficientStock:
		return warnStyle.Render(fmt.Sprintf("[%d] %s: insufficient stock (%d held, %d needed)", r.Index, r.EventType, r.Actual, r.Requested))
	default:
		return errorStyle.Render(fmt.Sprintf("[%d] %s: %s %s", r.Index, r.EventType, r.Kind, r.Detail))
	}
}

func (m *ConsoleUI) writeLogContent() {
	logWidth := m.logViewport.Width - 6
	if logWidth < 10 {
		logWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("QUEST ENGINE") + "\n\n")
	content.WriteString("Type /help for the command list.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", logWidth)) + "\n\n")

	for _, line := range m.logLines {
		content.WriteString(wordwrap.String(line, logWidth) + "\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	gs := m.gameState
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	content.WriteString("Session ID:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString("Creature:\n")
	content.WriteString(gs.CreatureID + "\n\n")

	content.WriteString(fmt.Sprintf("HP: %d\n", gs.HP))
	if gs.Scene != "" {
		content.WriteString("Scene: " + gs.Scene + "\n")
	}
	content.WriteString("\n")

	if len(gs.Tags) > 0 {
		content.WriteString("Tags:\n")
		keys := make([]string, 0, len(gs.Tags))
		for k := range gs.Tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			content.WriteString(fmt.Sprintf("• %s: %d\n", k, gs.Tags[k]))
		}
	} else {
		content.WriteString("Tags:\nNone set\n")
	}

	if len(gs.QuestStatus) > 0 {
		content.WriteString("\nQuests:\n")
		for k, v := range gs.QuestStatus {
			content.WriteString(fmt.Sprintf("• %s: %s\n", k, v))
		}
	}

	return content.String()
}
