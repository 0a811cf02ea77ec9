package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/escape-legacy/internal/handlers"
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// SessionView is the console's copy of the server-side session.
type SessionView handlers.SessionResponse

type screen int

const (
	screenInstructions screen = iota
	screenLevels
	screenRooms
	screenRoom
	screenPuzzle
	screenHunt
	screenInventory
	screenSettings
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	storyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
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

var titleCaser = cases.Title(language.English)

type sessionMsg struct {
	session *handlers.SessionResponse
	status  string
	err     error
}

type solveRecordedMsg struct {
	response *handlers.SolveResponse
	err      error
}

type combineMsg struct {
	response *handlers.CombineResponse
	err      error
}

// roomEntry is one selectable line in the room screen.
type roomEntry struct {
	kind   string // "puzzle", "hunt", "item"
	puzzle *catalog.Puzzle
	hunt   *catalog.Hunt
	item   *catalog.Item
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api     *APIClient
	cat     *catalog.Catalog
	session *SessionView

	screen screen
	cursor int
	width  int
	height int
	status string
	err    error

	showQuitModal bool

	// Puzzle interaction, local to one visit to the puzzle screen.
	puzzle        *catalog.Puzzle
	puzzleSession *state.PuzzleSession
	answer        textinput.Model
	showHint      bool

	// Hunt interaction.
	hunt        *catalog.Hunt
	huntSession *state.HuntSession

	// First item picked for a combination, empty if none.
	combineFirst string
}

func NewConsoleUI(api *APIClient, cat *catalog.Catalog, session *SessionView) ConsoleUI {
	answer := textinput.New()
	answer.Placeholder = "Your answer..."
	answer.CharLimit = 200
	answer.Width = 40

	first := screenLevels
	if !session.InstructionsSeen {
		first = screenInstructions
	}

	return ConsoleUI{
		api:     api,
		cat:     cat,
		session: session,
		screen:  first,
		answer:  answer,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	if !m.gs().GameStarted {
		return m.applyAction(state.StartGame{}, "")
	}
	return nil
}

func (m *ConsoleUI) gs() *state.GameState {
	return m.session.GameState
}

func (m *ConsoleUI) currentLevel() *catalog.Level {
	level, _ := m.cat.Level(m.gs().Player.CurrentLevelID)
	return level
}

func (m *ConsoleUI) currentRoom() *catalog.Room {
	room, _ := m.cat.Room(m.gs().Player.CurrentRoomID)
	return room
}

func (m *ConsoleUI) levelStatus(levelID string) *state.LevelStatus {
	for i := range m.session.Levels {
		if m.session.Levels[i].ID == levelID {
			return &m.session.Levels[i]
		}
	}
	return nil
}

func (m *ConsoleUI) roomStatus(roomID string) *state.RoomStatus {
	for i := range m.session.Levels {
		for j := range m.session.Levels[i].Rooms {
			if m.session.Levels[i].Rooms[j].ID == roomID {
				return &m.session.Levels[i].Rooms[j]
			}
		}
	}
	return nil
}

// roomEntries lists what the player can interact with in the room:
// unsolved and solved puzzles, hunts, and items not yet taken.
func (m *ConsoleUI) roomEntries() []roomEntry {
	room := m.currentRoom()
	if room == nil {
		return nil
	}
	var entries []roomEntry
	for i := range room.Puzzles {
		entries = append(entries, roomEntry{kind: "puzzle", puzzle: &room.Puzzles[i]})
	}
	for i := range room.Hunts {
		entries = append(entries, roomEntry{kind: "hunt", hunt: &room.Hunts[i]})
	}
	for i := range room.Items {
		if !m.gs().HasItem(room.Items[i].ID) {
			entries = append(entries, roomEntry{kind: "item", item: &room.Items[i]})
		}
	}
	return entries
}

// applyAction sends one transition to the API and refreshes the view.
func (m ConsoleUI) applyAction(action state.Action, status string) tea.Cmd {
	id := m.gs().ID
	return func() tea.Msg {
		session, err := m.api.ApplyAction(id, action)
		return sessionMsg{session: session, status: status, err: err}
	}
}

// applyActions sends several transitions in order and refreshes once.
func (m ConsoleUI) applyActions(actions []state.Action, status string) tea.Cmd {
	id := m.gs().ID
	return func() tea.Msg {
		var session *handlers.SessionResponse
		for _, action := range actions {
			var err error
			session, err = m.api.ApplyAction(id, action)
			if err != nil {
				return sessionMsg{err: err}
			}
		}
		return sessionMsg{session: session, status: status}
	}
}

func (m ConsoleUI) recordSolve(req handlers.SolveRequest) tea.Cmd {
	id := m.gs().ID
	return func() tea.Msg {
		response, err := m.api.SolvePuzzle(id, req)
		return solveRecordedMsg{response: response, err: err}
	}
}

func (m ConsoleUI) combineItems(item1ID, item2ID string) tea.Cmd {
	id := m.gs().ID
	return func() tea.Msg {
		response, err := m.api.CombineItems(id, item1ID, item2ID)
		return combineMsg{response: response, err: err}
	}
}

func (m ConsoleUI) dismissInstructions() tea.Cmd {
	id := m.gs().ID
	api := m.api
	return func() tea.Msg {
		if err := api.MarkInstructionsSeen(id); err != nil {
			return sessionMsg{err: err}
		}
		session, err := api.GetSession(id)
		return sessionMsg{session: session, err: err}
	}
}

// completionActions returns the follow-up transitions after a puzzle
// is solved: room completion once every puzzle in the room is done,
// then level completion and the next level's unlock once every room
// is complete.
func (m *ConsoleUI) completionActions() []state.Action {
	var actions []state.Action
	gs := m.gs()
	room := m.currentRoom()
	if room == nil {
		return nil
	}

	allSolved := true
	for i := range room.Puzzles {
		if !gs.PuzzleSolved(room.Puzzles[i].ID) {
			allSolved = false
			break
		}
	}
	if !allSolved || gs.RoomCompleted(room.ID) {
		return nil
	}
	actions = append(actions, state.CompleteRoom{RoomID: room.ID})

	level := m.currentLevel()
	if level == nil {
		return actions
	}
	for i := range level.Rooms {
		if level.Rooms[i].ID != room.ID && !gs.RoomCompleted(level.Rooms[i].ID) {
			return actions
		}
	}
	actions = append(actions, state.CompleteLevel{LevelID: level.ID}, state.AdvanceStory{})

	for i := range m.cat.Levels {
		if m.cat.Levels[i].ID == level.ID && i+1 < len(m.cat.Levels) {
			actions = append(actions, state.UnlockLevel{LevelID: m.cat.Levels[i+1].ID})
		}
	}
	return actions
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.session != nil {
			m.session = (*SessionView)(msg.session)
		}
		if msg.status != "" {
			m.status = msg.status
		}
		if m.screen == screenRoom {
			if actions := m.completionActions(); len(actions) > 0 {
				return m, m.applyActions(actions, m.roomCompletionStatus())
			}
		}
		return m, nil

	case solveRecordedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.session.GameState = msg.response.GameState
		m.screen = screenRoom
		m.cursor = 0
		if actions := m.completionActions(); len(actions) > 0 {
			return m, m.applyActions(actions, m.roomCompletionStatus())
		}
		return m, m.refreshSession()

	case combineMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.combineFirst = ""
		m.session.GameState = msg.response.GameState
		if msg.response.Success {
			m.status = "Created " + msg.response.NewItem.Name
		} else {
			m.status = "Those items don't combine."
		}
		m.cursor = 0
		return m, m.refreshSession()

	case tea.KeyMsg:
		if m.showQuitModal {
			return m.updateQuitModal(msg)
		}
		return m.updateKeys(msg)
	}

	if m.screen == screenPuzzle {
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	id := m.gs().ID
	return func() tea.Msg {
		session, err := m.api.GetSession(id)
		return sessionMsg{session: session, err: err}
	}
}

func (m *ConsoleUI) roomCompletionStatus() string {
	room := m.currentRoom()
	if room == nil {
		return ""
	}
	if room.CompletionText != "" {
		return room.CompletionText
	}
	return "Room complete!"
}

func (m ConsoleUI) updateQuitModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEnter:
		return m, tea.Quit
	default:
		switch msg.String() {
		case "y", "Y":
			return m, tea.Quit
		case "n", "N", "esc":
			m.showQuitModal = false
		}
	}
	return m, nil
}

func (m ConsoleUI) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.showQuitModal = true
		return m, nil
	}

	m.status = ""

	switch m.screen {
	case screenInstructions:
		if msg.Type == tea.KeyEnter {
			m.screen = screenLevels
			return m, m.dismissInstructions()
		}
		return m, nil

	case screenLevels:
		return m.updateLevels(msg)

	case screenRooms:
		return m.updateRooms(msg)

	case screenRoom:
		return m.updateRoom(msg)

	case screenPuzzle:
		return m.updatePuzzle(msg)

	case screenHunt:
		return m.updateHunt(msg)

	case screenInventory:
		return m.updateInventory(msg)

	case screenSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

func (m ConsoleUI) updateLevels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.showQuitModal = true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cat.Levels)-1 {
			m.cursor++
		}
	case "i":
		m.screen = screenInventory
		m.cursor = 0
	case "o":
		m.screen = screenSettings
	case "c":
		if err := clipboard.WriteAll(m.gs().ID.String()); err != nil {
			m.status = "Could not copy session ID"
		} else {
			m.status = "Session ID copied to clipboard"
		}
	case "enter":
		level := &m.cat.Levels[m.cursor]
		if !m.gs().LevelUnlocked(level.ID) {
			m.status = "That level is still locked."
			return m, nil
		}
		m.screen = screenRooms
		m.cursor = 0
		return m, m.applyAction(state.SetCurrentLevel{LevelID: level.ID}, level.StoryIntro)
	}
	return m, nil
}

func (m ConsoleUI) updateRooms(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	level := m.currentLevel()
	if level == nil {
		m.screen = screenLevels
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = screenLevels
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(level.Rooms)-1 {
			m.cursor++
		}
	case "i":
		m.screen = screenInventory
		m.cursor = 0
	case "enter":
		room := &level.Rooms[m.cursor]
		if rs := m.roomStatus(room.ID); rs != nil && rs.Locked {
			m.status = fmt.Sprintf("Locked. You need the %s.", room.RequiredKeyID)
			return m, nil
		}
		m.screen = screenRoom
		m.cursor = 0
		return m, m.applyAction(state.SetCurrentRoom{RoomID: room.ID}, "")
	}
	return m, nil
}

func (m ConsoleUI) updateRoom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.roomEntries()

	switch msg.String() {
	case "esc":
		m.screen = screenRooms
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "i":
		m.screen = screenInventory
		m.cursor = 0
	case "enter":
		if m.cursor >= len(entries) {
			return m, nil
		}
		entry := entries[m.cursor]
		switch entry.kind {
		case "puzzle":
			if m.gs().PuzzleSolved(entry.puzzle.ID) {
				m.status = "Already solved."
				return m, nil
			}
			// Hidden-object puzzles have no answer to type; searching
			// with the required items in hand resolves them directly.
			if entry.puzzle.Type == catalog.PuzzleHiddenObject {
				if missing := state.MissingItems(m.gs(), entry.puzzle); len(missing) > 0 {
					m.status = "You're missing something: " + strings.Join(missing, ", ")
					return m, nil
				}
				level := m.currentLevel()
				room := m.currentRoom()
				m.cursor = 0
				return m, m.applyAction(state.SolvePuzzle{
					LevelID:  level.ID,
					RoomID:   room.ID,
					PuzzleID: entry.puzzle.ID,
				}, "Your search pays off.")
			}
			m.puzzle = entry.puzzle
			m.puzzleSession = state.NewPuzzleSession(entry.puzzle)
			m.answer.Reset()
			m.answer.Focus()
			m.showHint = false
			m.screen = screenPuzzle
			return m, textinput.Blink
		case "hunt":
			if m.gs().HuntCompleted(entry.hunt.ID) {
				m.status = "Nothing more to find here."
				return m, nil
			}
			m.hunt = entry.hunt
			m.huntSession = state.NewHuntSession(entry.hunt)
			m.cursor = 0
			m.screen = screenHunt
		case "item":
			m.cursor = 0
			return m, m.applyAction(state.AddItem{Item: *entry.item}, "Took "+entry.item.Name)
		}
	}
	return m, nil
}

func (m ConsoleUI) updatePuzzle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenRoom
		m.cursor = 0
		return m, nil

	case tea.KeyEnter:
		input := strings.TrimSpace(m.answer.Value())
		if input == "" {
			return m, nil
		}

		answer := state.Answer{Text: input}
		switch m.puzzle.Type {
		case catalog.PuzzleSequence, catalog.PuzzlePattern:
			answer = state.Answer{Sequence: splitSequence(input)}
		}

		result := m.puzzleSession.Submit(m.gs(), answer)
		switch {
		case len(result.MissingItems) > 0:
			m.status = "You're missing something: " + strings.Join(result.MissingItems, ", ")
		case result.Correct:
			level := m.currentLevel()
			room := m.currentRoom()
			return m, m.recordSolve(handlers.SolveRequest{
				LevelID:  level.ID,
				RoomID:   room.ID,
				PuzzleID: m.puzzle.ID,
				Answer:   answer,
			})
		case result.Failed:
			m.screen = screenRoom
			m.cursor = 0
			m.status = "Out of attempts. Step back and think it over."
		default:
			if result.AttemptsRemaining >= 0 {
				m.status = fmt.Sprintf("Not quite. %d attempts left.", result.AttemptsRemaining)
			} else {
				m.status = "Not quite. Try again."
			}
		}
		m.answer.Reset()
		return m, nil

	case tea.KeyTab:
		m.showHint = !m.showHint
		return m, nil
	}

	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateHunt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenRoom
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.hunt.HiddenObjects)-1 {
			m.cursor++
		}
	case "enter":
		obj := m.hunt.HiddenObjects[m.cursor]
		if m.huntSession.Found(obj.ID) {
			m.status = "Nothing new there."
			return m, nil
		}
		progress := m.huntSession.Discover(obj.ID)
		if !progress.Completed {
			m.status = fmt.Sprintf("Found %s (%d/%d)", obj.Name, progress.Found, progress.Total)
			return m, nil
		}

		m.screen = screenRoom
		m.cursor = 0
		actions := []state.Action{state.CompleteHunt{HuntID: m.hunt.ID}}
		status := "Search complete!"
		if m.hunt.Reward != nil {
			actions = append(actions, state.AddItem{Item: *m.hunt.Reward})
			status = "Search complete! Found " + m.hunt.Reward.Name
		}
		return m, m.applyActions(actions, status)
	}
	return m, nil
}

func (m ConsoleUI) updateInventory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inventory := m.gs().Player.Inventory

	switch msg.String() {
	case "esc":
		m.screen = screenLevels
		m.cursor = 0
		m.combineFirst = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(inventory)-1 {
			m.cursor++
		}
	case "u":
		if m.cursor >= len(inventory) {
			return m, nil
		}
		item := inventory[m.cursor]
		if state.CanUseItem(m.gs(), m.cat, item.ID) {
			m.status = fmt.Sprintf("The %s looks useful here.", item.Name)
		} else {
			m.status = fmt.Sprintf("The %s has no use here.", item.Name)
		}
	case "x", "enter":
		if m.cursor >= len(inventory) {
			return m, nil
		}
		item := inventory[m.cursor]
		if m.combineFirst == "" {
			if !item.CanCombine {
				m.status = fmt.Sprintf("The %s can't be combined.", item.Name)
				return m, nil
			}
			m.combineFirst = item.ID
			m.status = "Pick a second item to combine with " + item.Name
			return m, nil
		}
		if m.combineFirst == item.ID {
			m.combineFirst = ""
			m.status = ""
			return m, nil
		}
		return m, m.combineItems(m.combineFirst, item.ID)
	}
	return m, nil
}

func (m ConsoleUI) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	settings := m.gs().Settings

	switch msg.String() {
	case "esc":
		m.screen = screenLevels
		m.cursor = 0
	case "t":
		theme := state.ThemeDark
		if settings.Theme == state.ThemeDark {
			theme = state.ThemeLight
		}
		return m, m.applyAction(state.SetTheme{Theme: theme}, "")
	case "s":
		return m, m.applyAction(state.ToggleSound{}, "")
	case "+", "=":
		return m, m.applyAction(state.SetMusicVolume{Volume: clampVolume(settings.MusicVolume + 0.1)}, "")
	case "-":
		return m, m.applyAction(state.SetMusicVolume{Volume: clampVolume(settings.MusicVolume - 0.1)}, "")
	case "]":
		return m, m.applyAction(state.SetSFXVolume{Volume: clampVolume(settings.SFXVolume + 0.1)}, "")
	case "[":
		return m, m.applyAction(state.SetSFXVolume{Volume: clampVolume(settings.SFXVolume - 0.1)}, "")
	case "r":
		m.screen = screenLevels
		m.cursor = 0
		return m, m.applyAction(state.ResetGame{}, "Game reset.")
	}
	return m, nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// splitSequence parses a comma-separated answer into sequence steps.
func splitSequence(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	var body string
	switch m.screen {
	case screenInstructions:
		body = m.viewInstructions()
	case screenLevels:
		body = m.viewLevels()
	case screenRooms:
		body = m.viewRooms()
	case screenRoom:
		body = m.viewRoom()
	case screenPuzzle:
		body = m.viewPuzzle()
	case screenHunt:
		body = m.viewHunt()
	case screenInventory:
		body = m.viewInventory()
	case screenSettings:
		body = m.viewSettings()
	}

	var footer strings.Builder
	if m.err != nil {
		footer.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	if m.status != "" {
		footer.WriteString("\n" + statusStyle.Render(m.wrap(m.status)))
	}
	return body + footer.String() + "\n"
}

func (m ConsoleUI) wrap(s string) string {
	width := m.width - 4
	if width < 20 {
		width = 76
	}
	return wordwrap.String(s, width)
}

func (m ConsoleUI) viewInstructions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ESCAPE LEGACY") + "\n\n")
	b.WriteString(m.wrap("Work through each level room by room. Solve puzzles, "+
		"search for hidden objects and collect items. Some rooms are locked: "+
		"find the right key first. Combine items in your inventory when one "+
		"alone isn't enough.") + "\n\n")
	b.WriteString("Controls:\n")
	b.WriteString("  ↑/↓ or j/k  move\n")
	b.WriteString("  Enter       select\n")
	b.WriteString("  Esc         back\n")
	b.WriteString("  i           inventory\n")
	b.WriteString("  o           settings\n")
	b.WriteString("  Ctrl+C      quit\n\n")
	b.WriteString(promptStyle.Render("Press Enter to begin"))
	return b.String()
}

func (m ConsoleUI) viewLevels() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ESCAPE LEGACY") + "\n")
	b.WriteString(promptStyle.Render("Session "+m.gs().ID.String()[:8]+"...  (c to copy full ID)") + "\n\n")
	b.WriteString(headingStyle.Render("Select a Level") + "\n\n")

	for i := range m.cat.Levels {
		level := &m.cat.Levels[i]
		status := m.levelStatus(level.ID)

		var marker string
		switch {
		case status != nil && status.Completed:
			marker = doneStyle.Render("[done]")
		case status == nil || !status.Unlocked:
			marker = lockedStyle.Render("[locked]")
		default:
			marker = fmt.Sprintf("[%3.0f%%]", status.Progress)
		}

		line := fmt.Sprintf("%s %s (%s)", marker, level.Name, titleCaser.String(string(level.Difficulty)))
		if i == m.cursor {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\nOverall progress: %.0f%%\n", m.gs().Player.GameProgress))
	b.WriteString(promptStyle.Render("\nEnter select · i inventory · o settings · q quit"))
	return b.String()
}

func (m ConsoleUI) viewRooms() string {
	level := m.currentLevel()
	if level == nil {
		return "No level selected."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(level.Name) + "\n\n")
	if level.Description != "" {
		b.WriteString(storyStyle.Render(m.wrap(level.Description)) + "\n\n")
	}

	for i := range level.Rooms {
		room := &level.Rooms[i]
		status := m.roomStatus(room.ID)

		var marker string
		switch {
		case status != nil && status.Completed:
			marker = doneStyle.Render("[done]")
		case status != nil && status.Locked:
			marker = lockedStyle.Render("[locked]")
		default:
			marker = "[open]"
		}

		line := fmt.Sprintf("%s %s", marker, room.Name)
		if status != nil && status.TotalPuzzles > 0 {
			line += promptStyle.Render(fmt.Sprintf("  %d/%d puzzles", status.SolvedPuzzles, status.TotalPuzzles))
		}
		if i == m.cursor {
			line = selectedStyle.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(promptStyle.Render("\nEnter enter room · Esc levels · i inventory"))
	return b.String()
}

func (m ConsoleUI) viewRoom() string {
	room := m.currentRoom()
	if room == nil {
		return "No room selected."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(room.Name) + "\n\n")
	if room.Description != "" {
		b.WriteString(storyStyle.Render(m.wrap(room.Description)) + "\n\n")
	}

	entries := m.roomEntries()
	if len(entries) == 0 {
		b.WriteString("Nothing else to do here.\n")
	}
	for i, entry := range entries {
		var line string
		switch entry.kind {
		case "puzzle":
			if m.gs().PuzzleSolved(entry.puzzle.ID) {
				line = doneStyle.Render("[solved] ") + entry.puzzle.ID
			} else {
				line = "[puzzle] " + entry.puzzle.ID
			}
		case "hunt":
			if m.gs().HuntCompleted(entry.hunt.ID) {
				line = doneStyle.Render("[searched] ") + entry.hunt.Name
			} else {
				line = "[search] " + entry.hunt.Name
			}
		case "item":
			line = "[take] " + entry.item.Name
		}
		if i == m.cursor {
			line = selectedStyle.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(promptStyle.Render("\nEnter interact · Esc rooms · i inventory"))
	return b.String()
}

func (m ConsoleUI) viewPuzzle() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(titleCaser.String(string(m.puzzle.Type))+" Puzzle") + "\n\n")
	b.WriteString(m.wrap(m.puzzle.Description) + "\n\n")

	if len(m.puzzle.RequiredItems) > 0 {
		missing := state.MissingItems(m.gs(), m.puzzle)
		if len(missing) > 0 {
			b.WriteString(errorStyle.Render("Requires: "+strings.Join(missing, ", ")) + "\n\n")
		}
	}

	if m.showHint && m.puzzle.Hint != "" {
		b.WriteString(statusStyle.Render("Hint: "+m.wrap(m.puzzle.Hint)) + "\n\n")
	}

	switch m.puzzle.Type {
	case catalog.PuzzleSequence, catalog.PuzzlePattern:
		b.WriteString("Enter the steps in order, separated by commas.\n\n")
	}

	b.WriteString(m.answer.View() + "\n\n")
	b.WriteString(promptStyle.Render("Enter submit · Tab hint · Esc back"))
	return b.String()
}

func (m ConsoleUI) viewHunt() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.hunt.Name) + "\n\n")
	if m.hunt.Description != "" {
		b.WriteString(storyStyle.Render(m.wrap(m.hunt.Description)) + "\n\n")
	}

	progress := m.huntSession.Progress()
	b.WriteString(fmt.Sprintf("Found %d of %d\n\n", progress.Found, progress.Total))

	for i, obj := range m.hunt.HiddenObjects {
		var line string
		if m.huntSession.Found(obj.ID) {
			line = doneStyle.Render("[found] ") + obj.Name
		} else {
			line = "[?] " + obj.Name
		}
		if i == m.cursor {
			line = selectedStyle.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(promptStyle.Render("\nEnter inspect · Esc back"))
	return b.String()
}

func (m ConsoleUI) viewInventory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory") + "\n\n")

	inventory := m.gs().Player.Inventory
	if len(inventory) == 0 {
		b.WriteString("Your pockets are empty.\n")
	}
	for i, item := range inventory {
		line := item.Name
		if item.Description != "" {
			line += promptStyle.Render(" - " + item.Description)
		}
		if item.ID == m.combineFirst {
			line = statusStyle.Render("[combining] ") + line
		}
		if i == m.cursor {
			line = selectedStyle.Render("▶ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(promptStyle.Render("\nu use · x combine · Esc back"))
	return b.String()
}

func (m ConsoleUI) viewSettings() string {
	settings := m.gs().Settings

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")
	b.WriteString(fmt.Sprintf("  Theme:        %s\n", settings.Theme))
	sound := "on"
	if !settings.SoundEnabled {
		sound = "off"
	}
	b.WriteString(fmt.Sprintf("  Sound:        %s\n", sound))
	b.WriteString(fmt.Sprintf("  Music volume: %.0f%%\n", settings.MusicVolume*100))
	b.WriteString(fmt.Sprintf("  SFX volume:   %.0f%%\n", settings.SFXVolume*100))
	b.WriteString(promptStyle.Render("\nt theme · s sound · +/- music · [/] sfx · r reset game · Esc back"))
	return b.String()
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved automatically.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
