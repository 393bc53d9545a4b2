package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/paydesk/paydesk/internal/dataset"
	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/logging"
	"github.com/paydesk/paydesk/internal/portal"
	listview "github.com/paydesk/paydesk/internal/tui/list"
)

const (
	checkboxWidth      = 3
	defaultColumnWidth = 14
	maxActionKeys      = 9
)

// fetchedMsg carries one page from the data owner. seq identifies the
// request so that superseded responses can be dropped.
type fetchedMsg[R any] struct {
	seq  uint64
	page dataset.Page[R]
	err  error
}

// searchAppliedMsg is sent when the debounced search settles.
type searchAppliedMsg struct {
	query string
}

// actionDoneMsg reports the outcome of an action handler.
type actionDoneMsg struct {
	label string
	count int
	err   error
}

// request is the query state the grid callbacks write into. It is shared by
// every copy of the model.
type request struct {
	query dataset.Query
	dirty bool
	seq   uint64
	// search receives applied searches from the debounce goroutine.
	search chan string
}

func (r *request) publishSearch(q string) {
	for {
		select {
		case r.search <- q:
			return
		default:
			// Drop the stale value so the latest search wins.
			select {
			case <-r.search:
			default:
			}
		}
	}
}

// TableModel is the Bubble Tea model for one portal table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type TableModel[R any] struct {
	state  ViewState
	title  string
	def    portal.Definition[R]
	grid   *grid.Table[R]
	req    *request
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger

	page    dataset.Page[R]
	loading bool
	err     error
	view    grid.View[R]

	body         table.Model
	search       textinput.Model
	jump         textinput.Model
	columns      *listview.Model[grid.Column[R]]
	loadingState *LoadingState

	// focus indexes the visible column that sorting and hiding act on.
	focus  int
	status string
	width  int
	height int
}

// NewTableModel builds the grid for def and prepares the first fetch, which
// Init dispatches.
func NewTableModel[R any](ctx context.Context, def portal.Definition[R], cfg grid.Config) (TableModel[R], error) {
	ctx, cancel := context.WithCancel(ctx)
	logger := logging.ComponentLogger(*logging.FromContext(ctx), "tui")
	req := &request{
		query:  dataset.Query{PageSize: cfg.PageSize},
		search: make(chan string, 1),
	}

	g, err := def.NewTable(cfg,
		grid.WithLogger[R](logger),
		grid.OnSearch[R](req.publishSearch),
		grid.OnSortChange[R](func(s grid.SortState) {
			req.query.SortKey = s.Key
			req.query.SortDesc = s.Desc()
			req.query.Page = 0
			req.dirty = true
		}),
		grid.OnPageChange[R](func(page int) {
			req.query.Page = page
			req.dirty = true
		}),
		grid.OnPageSizeChange[R](func(size int) {
			req.query.PageSize = size
			req.dirty = true
		}),
	)
	if err != nil {
		cancel()
		return TableModel[R]{}, fmt.Errorf("building %s table: %w", def.Entity, err)
	}

	m := TableModel[R]{
		state:        ViewStateList,
		title:        cases.Title(language.English).String(string(def.Entity)),
		def:          def,
		grid:         g,
		req:          req,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
		loading:      true,
		search:       newTextInput("Search...", searchInputCharLimit, searchInputWidth),
		jump:         newTextInput("page", jumpInputCharLimit, jumpInputWidth),
		loadingState: NewLoadingState().WithMessage("Loading " + string(def.Entity) + "..."),
		width:        defaultWidth,
		height:       defaultHeight,
	}
	return m.render(), nil
}

func newTextInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

// Init dispatches the first fetch and starts listening for searches.
func (m TableModel[R]) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.loadingState.Init(), m.waitForSearch())
}

// Grid exposes the underlying table engine.
func (m TableModel[R]) Grid() *grid.Table[R] { return m.grid }

// Close stops the search listener and the debouncer.
func (m TableModel[R]) Close() {
	m.grid.Close()
	m.cancel()
}

// fetch issues the current query and returns the command delivering it.
func (m TableModel[R]) fetch() tea.Cmd {
	m.req.seq++
	m.req.dirty = false
	seq, q := m.req.seq, m.req.query
	src, ctx := m.def.Source, m.ctx
	m.logger.Debug().
		Uint64("seq", seq).
		Int("page", q.Page).
		Int("page_size", q.PageSize).
		Str("sort", q.SortKey).
		Str("search", q.Search).
		Msg("fetching")
	return func() tea.Msg {
		page, err := src.Fetch(ctx, q)
		return fetchedMsg[R]{seq: seq, page: page, err: err}
	}
}

// waitForSearch blocks until the debouncer applies a search.
func (m TableModel[R]) waitForSearch() tea.Cmd {
	ch, ctx := m.req.search, m.ctx
	return func() tea.Msg {
		select {
		case q := <-ch:
			return searchAppliedMsg{query: q}
		case <-ctx.Done():
			return nil
		}
	}
}

// reload marks the table loading and fetches the current query.
func (m TableModel[R]) reload() (TableModel[R], tea.Cmd) {
	wasLoading := m.loading
	m.loading = true
	cmd := m.fetch()
	m = m.render()
	if wasLoading {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.loadingState.Init())
}

// render pushes the data owner's state into the grid.
func (m TableModel[R]) render() TableModel[R] {
	m.view = m.grid.Render(grid.Input[R]{
		Rows:       m.page.Rows,
		Pagination: m.page.Pagination,
		Status:     grid.Status{IsLoading: m.loading, Err: m.err},
	})
	return m.rebuild()
}

// refresh re-reads the grid after a local interaction.
func (m TableModel[R]) refresh() TableModel[R] {
	m.view = m.grid.View()
	return m.rebuild()
}

func (m TableModel[R]) rebuild() TableModel[R] {
	m.focus = min(m.focus, max(len(m.view.Columns)-1, 0))
	m.body = m.buildBody()
	return m
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m TableModel[R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.columns != nil {
			m.columns.SetHeight(m.bodyHeight())
		}
		return m.rebuild(), nil
	case fetchedMsg[R]:
		return m.handleFetched(msg), nil
	case searchAppliedMsg:
		m.req.query.Search = msg.query
		m.req.query.Page = 0
		var cmd tea.Cmd
		m, cmd = m.reload()
		return m, tea.Batch(cmd, m.waitForSearch())
	case actionDoneMsg:
		return m.handleActionDone(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		return m, m.loadingState.Update(msg)
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		if m.req.dirty {
			var fetch tea.Cmd
			m, fetch = m.reload()
			cmd = tea.Batch(cmd, fetch)
		}
		return m, cmd
	}
	return m, nil
}

func (m TableModel[R]) handleFetched(msg fetchedMsg[R]) TableModel[R] {
	if msg.seq != m.req.seq {
		m.logger.Debug().Uint64("seq", msg.seq).Uint64("current", m.req.seq).Msg("dropping stale page")
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("fetch failed")
		m.err = msg.err
		return m.render()
	}
	m.err = nil
	m.page = msg.page
	// The source caps out-of-range pages to the last one.
	m.req.query.Page = msg.page.Pagination.CurrentPage
	return m.render()
}

func (m TableModel[R]) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Str("action", msg.label).Msg("action failed")
		m.status = ErrorStyle.Render(fmt.Sprintf("%s failed: %v", msg.label, msg.err))
	} else {
		m.status = SuccessStyle.Render(fmt.Sprintf("%s done (%d selected)", msg.label, msg.count))
	}
	m.invalidate()
	return m.reload()
}

// invalidate drops cached pages so the next fetch reaches the source.
func (m TableModel[R]) invalidate() {
	if inv, ok := m.def.Source.(dataset.Invalidator); ok {
		inv.Invalidate()
	}
}

func (m TableModel[R]) handleKey(k tea.KeyMsg) (TableModel[R], tea.Cmd) {
	if k.String() == keyCtrlC {
		return m.quit()
	}
	switch m.state {
	case ViewStateSearch:
		return m.handleSearchKey(k)
	case ViewStateJump:
		return m.handleJumpKey(k)
	case ViewStateColumns:
		return m.handleColumnsKey(k), nil
	case ViewStateQuitting:
		return m, nil
	default:
		return m.handleListKey(k)
	}
}

func (m TableModel[R]) quit() (TableModel[R], tea.Cmd) {
	m.state = ViewStateQuitting
	m.Close()
	return m, tea.Quit
}

//nolint:gocyclo,cyclop // One case per key binding.
func (m TableModel[R]) handleListKey(k tea.KeyMsg) (TableModel[R], tea.Cmd) {
	m.status = ""
	switch k.String() {
	case keyQuit:
		return m.quit()
	case keyR:
		m.err = nil
		m.invalidate()
		return m.reload()
	case keySpace:
		if c := m.body.Cursor(); c >= 0 && c < len(m.view.Rows) {
			m.grid.ToggleRow(m.view.Rows[c].ID)
		}
		return m.refresh(), nil
	case keyA:
		m.grid.ToggleHeader()
		return m.refresh(), nil
	case keyLeft, keyH:
		m.focus = max(m.focus-1, 0)
		return m.rebuild(), nil
	case keyRight, keyL:
		m.focus = min(m.focus+1, max(len(m.view.Columns)-1, 0))
		return m.rebuild(), nil
	case keyS:
		if m.focus < len(m.view.Columns) {
			if err := m.grid.ToggleSort(m.view.Columns[m.focus].ColumnID); err != nil {
				m.status = WarningStyle.Render(err.Error())
			}
		}
		return m.refresh(), nil
	case keySlash:
		if !m.grid.Config().EnableFiltering {
			return m, nil
		}
		m.state = ViewStateSearch
		m.search.SetValue(m.grid.SearchInput())
		return m, m.search.Focus()
	case keyEsc:
		if m.grid.SearchInput() != "" || m.grid.AppliedSearch() != "" {
			m.search.SetValue("")
			m.grid.SetSearch("")
			m.grid.FlushSearch()
		}
		return m.refresh(), nil
	case keyN, keyPgDown:
		m.grid.NextPage()
	case keyP, keyPgUp:
		m.grid.PreviousPage()
	case keyFirst:
		m.grid.FirstPage()
	case keyLast:
		m.grid.LastPage()
	case keyPlus:
		m.grid.StepPageSize(1)
	case keyMinus:
		m.grid.StepPageSize(-1)
	case keyG:
		if !m.view.Pagination.Enabled || !m.view.Interactive() {
			return m, nil
		}
		m.state = ViewStateJump
		m.jump.SetValue("")
		m.grid.SetJumpInput("")
		return m, m.jump.Focus()
	case keyV:
		if !m.grid.Config().EnableColumnVisibility {
			return m, nil
		}
		m.state = ViewStateColumns
		m.columns = listview.New(m.grid.Columns(), m.bodyHeight(), m.renderColumnChoice)
		return m, nil
	default:
		if idx, ok := actionIndex(k.String()); ok {
			return m.invoke(idx)
		}
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(k)
		return m, cmd
	}
	return m.refresh(), nil
}

// actionIndex maps the keys 1-9 onto action positions.
func actionIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+maxActionKeys {
		return 0, false
	}
	return int(key[0] - '1'), true
}

// invoke binds the action at idx to the current selection and runs its
// handler as a command.
func (m TableModel[R]) invoke(idx int) (TableModel[R], tea.Cmd) {
	if idx >= len(m.view.Actions) {
		return m, nil
	}
	label := m.view.Actions[idx].Label
	inv, err := m.grid.Bind(label)
	if err != nil {
		m.status = ErrorStyle.Render(err.Error())
		return m, nil
	}
	if !inv.Enabled {
		m.status = WarningStyle.Render(label + " is not available for the current selection")
		return m, nil
	}
	m.status = StatusStyle.Render(label + "...")
	ctx := logging.ContextWithTraceID(m.ctx, logging.GetOrGenerateTraceID(m.ctx))
	return m, func() tea.Msg {
		return actionDoneMsg{label: inv.Label, count: inv.Count, err: inv.Run(ctx)}
	}
}

func (m TableModel[R]) handleSearchKey(k tea.KeyMsg) (TableModel[R], tea.Cmd) {
	switch k.String() {
	case keyEnter:
		m.grid.FlushSearch()
		fallthrough
	case keyEsc:
		m.state = ViewStateList
		m.search.Blur()
		return m.refresh(), nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(k)
	m.grid.SetSearch(m.search.Value())
	return m.refresh(), cmd
}

func (m TableModel[R]) handleJumpKey(k tea.KeyMsg) (TableModel[R], tea.Cmd) {
	switch k.String() {
	case keyEnter:
		m.grid.SubmitJump()
		if m.grid.Pager().JumpInput() != "" {
			m.status = WarningStyle.Render(fmt.Sprintf("No page %q", m.jump.Value()))
			return m.refresh(), nil
		}
		fallthrough
	case keyEsc:
		m.state = ViewStateList
		m.jump.Blur()
		m.jump.SetValue("")
		m.grid.SetJumpInput("")
		return m.refresh(), nil
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(k)
	m.grid.SetJumpInput(m.jump.Value())
	return m.refresh(), cmd
}

func (m TableModel[R]) handleColumnsKey(k tea.KeyMsg) TableModel[R] {
	switch k.String() {
	case keyEsc, keyV, keyQuit:
		m.state = ViewStateList
		m.columns = nil
		return m.refresh()
	case keySpace, keyEnter:
		col, ok := m.columns.Selected()
		if ok && !m.grid.ToggleColumn(col.ID) {
			m.status = WarningStyle.Render(col.Title() + " cannot be hidden")
		} else {
			m.status = ""
		}
		return m.refresh()
	}
	m.columns.Update(k)
	return m
}

func (m TableModel[R]) renderColumnChoice(col grid.Column[R], selected bool) string {
	box := "[ ]"
	if m.grid.IsColumnVisible(col.ID) {
		box = "[x]"
	}
	line := box + " " + col.Title()
	if !col.EnableHiding {
		line += MutedStyle.Render(" (fixed)")
	}
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

func (m TableModel[R]) bodyHeight() int {
	return max(m.height-chromeLines, minBodyHeight)
}

func checkboxGlyph(s grid.CheckState) string {
	switch s {
	case grid.Checked:
		return "[x]"
	case grid.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

func rowGlyph(selected bool) string {
	if selected {
		return checkboxGlyph(grid.Checked)
	}
	return checkboxGlyph(grid.Unchecked)
}

// buildBody maps the grid view onto a bubbles table.
func (m TableModel[R]) buildBody() table.Model {
	v := m.view
	cols := make([]table.Column, 0, len(v.Columns)+1)
	if v.Selectable {
		cols = append(cols, table.Column{Title: checkboxGlyph(v.HeaderCheckbox), Width: checkboxWidth})
	}
	widths := make([]int, len(v.Columns))
	for i, h := range v.Columns {
		title := h.Title
		if ind := h.Sort.Indicator(); ind != "" {
			title += " " + ind
		}
		if i == m.focus {
			title = "›" + title
		}
		widths[i] = h.Width
		if widths[i] <= 0 {
			widths[i] = defaultColumnWidth
		}
		cols = append(cols, table.Column{Title: title, Width: widths[i]})
	}

	rows := make([]table.Row, len(v.Rows))
	for i, r := range v.Rows {
		row := make(table.Row, 0, len(cols))
		if v.Selectable {
			row = append(row, rowGlyph(r.Selected))
		}
		for j, c := range r.Cells {
			row = append(row, cellText(c, widths[j]))
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.bodyHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	if len(rows) > 0 {
		t.SetCursor(min(m.body.Cursor(), len(rows)-1))
	}
	return t
}

func cellText(c grid.Cell, width int) string {
	text := c.Text
	if c.Kind == grid.CellBadge {
		text = BadgeText(c)
	}
	switch c.Align {
	case grid.AlignRight:
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, text)
	case grid.AlignCenter:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	default:
		return text
	}
}

// View renders the model (Bubble Tea interface).
func (m TableModel[R]) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderActions())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	if p := m.renderPagination(); p != "" {
		b.WriteString(p)
		b.WriteString("\n")
	}
	switch m.state {
	case ViewStateSearch:
		b.WriteString("Search: " + m.search.View() + "\n")
	case ViewStateJump:
		b.WriteString("Go to page: " + m.jump.View() + "\n")
	case ViewStateList, ViewStateColumns, ViewStateQuitting:
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(m.helpText()))
	return b.String()
}

func (m TableModel[R]) renderTitle() string {
	parts := []string{TitleStyle.Render(m.title)}
	if q := m.view.AppliedSearch; q != "" {
		parts = append(parts, InfoStyle.Render(fmt.Sprintf("search: %q", q)))
	}
	if m.grid.SearchPending() {
		parts = append(parts, MutedStyle.Render("(typing)"))
	}
	if s := m.view.Sort; s.Active() {
		parts = append(parts, MutedStyle.Render(fmt.Sprintf("sorted by %s %s", s.ColumnID, s.Direction)))
	}
	if m.view.SelectedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", m.view.SelectedCount))
	}
	return strings.Join(parts, "  ")
}

func (m TableModel[R]) renderActions() string {
	buttons := make([]string, 0, len(m.view.Actions))
	for i, a := range m.view.Actions {
		label := fmt.Sprintf("%d %s %s", i+1, a.Icon, a.Label)
		if !a.Enabled {
			buttons = append(buttons, DisabledStyle.Render(label))
			continue
		}
		buttons = append(buttons, ActionStyle(a.Variant).Render(label))
	}
	return strings.Join(buttons, " ")
}

func (m TableModel[R]) renderBody() string {
	switch m.view.Kind {
	case grid.ViewLoading:
		return RenderLoading(m.loadingState)
	case grid.ViewError:
		return ErrorStyle.Render("Error: "+m.view.Err.Error()) + "\n" + HelpStyle.Render("press r to retry")
	case grid.ViewEmpty:
		text := HeaderStyle.Render(m.view.EmptyMessage)
		if m.view.EmptyDescription != "" {
			text += "\n" + m.view.EmptyDescription
		}
		return EmptyStyle.Render(text)
	case grid.ViewData:
	}
	if m.state == ViewStateColumns && m.columns != nil {
		return BoxStyle.Render(HeaderStyle.Render("Columns") + "\n" + m.columns.View())
	}
	return m.body.View()
}

func (m TableModel[R]) renderPagination() string {
	p := m.view.Pagination
	if !p.Enabled {
		return ""
	}
	nav := func(label string, enabled bool) string {
		if enabled {
			return PageStyle.Render(label)
		}
		return MutedStyle.Render(PageStyle.Render(label))
	}
	parts := []string{nav("«", p.Controls.First), nav("‹", p.Controls.Previous)}
	current := p.Descriptor.Page()
	for _, tok := range p.Tokens {
		if !tok.IsEllipsis() && tok.Page == current {
			parts = append(parts, CurrentPage.Render(tok.String()))
			continue
		}
		parts = append(parts, PageStyle.Render(tok.String()))
	}
	parts = append(parts, nav("›", p.Controls.Next), nav("»", p.Controls.Last))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "  " +
		MutedStyle.Render(fmt.Sprintf("%s  ·  %d per page", p.Summary, p.PageSize))
}

func (m TableModel[R]) helpText() string {
	switch m.state {
	case ViewStateSearch:
		return "enter apply · esc close"
	case ViewStateJump:
		return "enter go · esc cancel"
	case ViewStateColumns:
		return "↑/↓ move · space toggle · esc done"
	case ViewStateList, ViewStateQuitting:
	}
	return "↑/↓ move · space select · a all · ←/→ column · s sort · / search · n/p page · </> first/last · " +
		"g go to · +/- size · v columns · r reload · 1-9 actions · q quit"
}
