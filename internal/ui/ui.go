package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/curator/internal/models"
	"github.com/desertthunder/curator/internal/repositories"
	"github.com/desertthunder/curator/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryListView ViewState = iota
	DetailView
	ConfirmView
	ExportView
	ResultView
)

// exportTarget is the platform chosen on the confirm view.
type exportTarget int

const (
	targetNone exportTarget = iota
	targetYouTube
	targetSpotify
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	repo    *repositories.LibraryRepository
	engine  *tasks.ExportEngine
	session *tasks.Session

	width  int
	height int

	libraryList list.Model
	entries     []*models.SavedPlaylist
	itemList    list.Model
	selected    *models.SavedPlaylist

	progressChan chan tasks.ProgressUpdate
	done         chan exportCompleteMsg
	progress     tasks.ProgressUpdate
	target       exportTarget

	youtubeResult *tasks.YouTubeExport
	spotifyResult *tasks.SpotifyExport
	err           error

	help help.Model
	keys keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	youtube key.Binding
	spotify key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		youtube: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "youtube"),
		),
		spotify: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "spotify"),
		),
		no: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "cancel"),
		),
		restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "back to library"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.youtube, k.spotify},
		{k.restart, k.quit},
	}
}

// libraryItem wraps [models.SavedPlaylist] to implement list.Item.
type libraryItem struct {
	entry *models.SavedPlaylist
}

func (i libraryItem) FilterValue() string { return i.entry.Name() }
func (i libraryItem) Title() string       { return i.entry.Name() }
func (i libraryItem) Description() string {
	data := i.entry.Data()
	desc := fmt.Sprintf("%d items • %s", len(data.Items), i.entry.Date())
	if data.IsManualAnalysis {
		desc += " • manual"
	}
	return desc
}

// resultItem wraps [models.PlaylistItem] to implement list.Item.
type resultItem struct {
	item models.PlaylistItem
}

func (i resultItem) FilterValue() string { return i.item.Title }
func (i resultItem) Title() string       { return i.item.Title }
func (i resultItem) Description() string {
	return fmt.Sprintf("%s • %.0f/100", i.item.Creator, i.item.Score)
}

type libraryLoadedMsg struct {
	entries []*models.SavedPlaylist
	err     error
}

type progressUpdateMsg tasks.ProgressUpdate

type exportCompleteMsg struct {
	youtube *tasks.YouTubeExport
	spotify *tasks.SpotifyExport
	err     error
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The session may be nil; Spotify export is then unavailable and the confirm
// view says so.
func NewModel(ctx context.Context, repo *repositories.LibraryRepository, engine *tasks.ExportEngine, session *tasks.Session) *Model {
	return &Model{
		ctx:     ctx,
		view:    LibraryListView,
		repo:    repo,
		engine:  engine,
		session: session,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init loads the archive.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.libraryList.Width() == 0 {
			m.libraryList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.itemList.Width() == 0 {
			m.itemList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LibraryListView:
			return m.handleLibraryKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case libraryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.entries = msg.entries
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = libraryItem{entry: entry}
		}
		m.libraryList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.libraryList.Title = "Curation Archive"
		m.libraryList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case exportCompleteMsg:
		m.youtubeResult = msg.youtube
		m.spotifyResult = msg.spotify
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LibraryListView:
		return m.renderLibrary()
	case DetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	case ExportView:
		return m.renderExport()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if selected, ok := m.libraryList.SelectedItem().(libraryItem); ok {
			m.openDetail(selected.entry)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.libraryList, cmd = m.libraryList.Update(msg)
	return m, cmd
}

func (m *Model) openDetail(entry *models.SavedPlaylist) {
	m.selected = entry
	data := entry.Data()
	items := make([]list.Item, len(data.Items))
	for i, item := range data.Items {
		items[i] = resultItem{item: item}
	}
	m.itemList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.itemList.Title = fmt.Sprintf("Items in '%s'", entry.Name())
	m.itemList.SetSize(m.width-4, m.height-8)
	m.view = DetailView
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LibraryListView
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.itemList, cmd = m.itemList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = DetailView
		return m, nil
	case "y":
		m.target = targetYouTube
		m.view = ExportView
		return m, m.startExport()
	case "s":
		if m.session == nil || m.session.Token == "" {
			return m, nil
		}
		m.target = targetSpotify
		m.view = ExportView
		return m, m.startExport()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = LibraryListView
		m.selected = nil
		m.youtubeResult = nil
		m.spotifyResult = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryListView:
		m.libraryList, cmd = m.libraryList.Update(msg)
	case DetailView:
		m.itemList, cmd = m.itemList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.repo.List(m.ctx)
		return libraryLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) startExport() tea.Cmd {
	progressChan := make(chan tasks.ProgressUpdate, 50)
	m.progressChan = progressChan
	m.engine.SetProgress(progressChan)
	result := m.selected.Data()
	target := m.target

	done := make(chan exportCompleteMsg, 1)
	go func() {
		defer close(progressChan)
		switch target {
		case targetSpotify:
			export, err := m.engine.ExportToSpotify(m.ctx, m.session, result)
			done <- exportCompleteMsg{spotify: export, err: err}
		default:
			export, err := m.engine.ExportToYouTube(result)
			done <- exportCompleteMsg{youtube: export, err: err}
		}
	}()
	m.done = done

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan := m.progressChan
	done := m.done
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}
		select {
		case update, ok := <-progressChan:
			if !ok {
				return <-done
			}
			return progressUpdateMsg(update)
		case msg := <-done:
			return msg
		}
	}
}

func (m *Model) renderLibrary() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.libraryList.View(), helpView)
}

func (m *Model) renderDetail() string {
	data := m.selected.Data()
	header := styles.help.Render(fmt.Sprintf("Vibe %.0f/100 • %s", data.VibeScore, data.EditorCommentary))

	exportKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "export"),
	)
	helpView := m.help.ShortHelpView([]key.Binding{exportKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", m.itemList.View(), header, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Export '%s'?", m.selected.Name()))
	info := fmt.Sprintf("\nItems: %d\n", len(m.selected.Data().Items))

	keys := []key.Binding{m.keys.youtube}
	if m.session != nil && m.session.Token != "" {
		keys = append(keys, m.keys.spotify)
	} else {
		info += styles.warn.Render("Spotify unavailable: not authenticated\n")
	}
	keys = append(keys, m.keys.no, m.keys.quit)
	helpView := m.help.ShortHelpView(keys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderExport() string {
	title := styles.title.Render("Exporting")
	return fmt.Sprintf("%s\n\n%s", title, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Export failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	title := styles.ok.Render("✓ Export Complete")
	var info string
	switch {
	case m.youtubeResult != nil:
		info = fmt.Sprintf("\nURL: %s\nExported: %d\nSkipped: %d\n",
			m.youtubeResult.URL, m.youtubeResult.Exported, m.youtubeResult.Unresolved)
	case m.spotifyResult != nil:
		info = fmt.Sprintf("\nPlaylist: %s\nAdded: %d\nSkipped: %d\n",
			m.spotifyResult.PlaylistURL, m.spotifyResult.Added, m.spotifyResult.Unresolved)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
