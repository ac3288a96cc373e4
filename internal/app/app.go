package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"

	"github.com/nhle/postboard/internal/keys"
	"github.com/nhle/postboard/internal/model"
	"github.com/nhle/postboard/internal/selector"
	"github.com/nhle/postboard/internal/store"
	appsync "github.com/nhle/postboard/internal/sync"
	"github.com/nhle/postboard/internal/ui"
	"github.com/nhle/postboard/internal/ui/command"
	helpview "github.com/nhle/postboard/internal/ui/help"
	"github.com/nhle/postboard/internal/ui/notificationlist"
	"github.com/nhle/postboard/internal/ui/postform"
	"github.com/nhle/postboard/internal/ui/postlist"
	"github.com/nhle/postboard/internal/ui/postview"
	"github.com/nhle/postboard/internal/ui/userlist"
	"github.com/nhle/postboard/internal/ui/userpage"
)

// storeChangedMsg is sent after the store applied one or more actions.
type storeChangedMsg struct{}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewPosts ViewState = iota
	ViewPost
	ViewUsers
	ViewUser
	ViewNotifications
	ViewAddPost
	ViewEditPost
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing, layout
// and the subscription to the store.
type Model struct {
	currentView ViewState
	backStack   []ViewState
	layout      ui.Layout
	store       *store.Store
	sel         *selector.Selectors
	thunks      *appsync.Thunks
	poller      *appsync.Poller
	changes     <-chan struct{}
	unsubscribe func()
	keys        *keys.KeyMap

	postList      postlist.Model
	postView      postview.Model
	postForm      postform.Model
	userList      userlist.Model
	userPage      userpage.Model
	notifications notificationlist.Model
	helpView      helpview.Model
	commandView   command.Model

	unread int
	flash  string
	ready  bool
}

// New creates the root model. The store must already be started.
func New(s *store.Store, t *appsync.Thunks, p *appsync.Poller) Model {
	k := keys.DefaultKeyMap()
	changes, unsubscribe := s.Subscribe()

	m := Model{
		currentView:   ViewPosts,
		store:         s,
		sel:           selector.New(),
		thunks:        t,
		poller:        p,
		changes:       changes,
		unsubscribe:   unsubscribe,
		keys:          k,
		postList:      postlist.New(k, 80, 22),
		postView:      postview.New(k, 80, 22),
		postForm:      postform.New(80, 22),
		userList:      userlist.New(k, 80, 22),
		userPage:      userpage.New(k, 80, 22),
		notifications: notificationlist.New(80, 22),
		helpView:      helpview.New(k, 80, 22),
		commandView:   command.New(80, 22),
	}
	m.refresh()
	return m
}

// Init fetches users, mounts the post list and starts the notification
// poller.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForChange(),
		m.postList.Init(),
		m.thunks.FetchUsersCmd(),
		m.mount(ViewPosts),
		m.poller.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.postList.SetSize(w, h)
		m.postView.SetSize(w, h)
		m.postForm.SetSize(w, h)
		m.userList.SetSize(w, h)
		m.userPage.SetSize(w, h)
		m.notifications.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case storeChangedMsg:
		cmds := []tea.Cmd{m.refresh(), m.waitForChange()}
		// The notifications page keeps everything it shows marked read.
		if m.currentView == ViewNotifications && m.unread > 0 {
			cmds = append(cmds, m.dispatch(store.AllNotificationsRead{}))
		}
		return m, tea.Batch(cmds...)

	case appsync.ResultMsg:
		if msg.Err != nil {
			m.flash = fmt.Sprintf("%s failed: %v", msg.Op, msg.Err)
		}
		return m, nil

	case appsync.PollResultMsg:
		if msg.Err != nil {
			m.flash = "notifications refresh failed: " + msg.Err.Error()
		}
		return m, m.poller.WaitForNextResult()

	case spinner.TickMsg:
		// The post list spinner keeps ticking while other views are active.
		var cmd tea.Cmd
		m.postList, cmd = m.postList.Update(msg)
		return m, cmd

	case appsync.PostAddedMsg:
		if msg.Err != nil {
			if m.postForm.EditMode() {
				// The add form was replaced by an edit; keep the edit intact.
				m.flash = "Failed to save the post: " + msg.Err.Error()
				return m, nil
			}
			return m, m.postForm.Failed(msg.Err)
		}
		m.flash = fmt.Sprintf("Saved %q", msg.Post.Title)
		reset := m.postForm.StartCreate()
		if m.currentView != ViewAddPost {
			return m, reset
		}
		return m, tea.Batch(reset, m.navigateTop(ViewPosts))

	case postlist.SelectedPostMsg:
		return m, m.openPost(msg.PostID)

	case postview.ReactMsg:
		return m, m.dispatch(store.ReactionAdded{PostID: msg.PostID, Reaction: msg.Reaction})

	case postview.EditPostMsg:
		return m, m.editPost(msg.PostID)

	case postview.ViewUserMsg:
		return m, m.openUser(msg.UserID)

	case postview.BackMsg, userpage.BackMsg:
		m.back()
		return m, nil

	case userlist.SelectedUserMsg:
		return m, m.openUser(msg.UserID)

	case postform.SubmitNewMsg:
		return m, m.thunks.AddNewPostCmd(msg.Post)

	case postform.SubmitEditMsg:
		e := msg.Edit
		m.back()
		return m, m.dispatch(store.PostUpdated{ID: e.ID, Title: e.Title, Content: e.Content})

	case postform.CancelMsg:
		m.back()
		return m, nil

	case command.CommandMsg:
		m.back()
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		m.flash = ""

		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		// Text-entry views get every other key, apart from esc.
		switch m.currentView {
		case ViewAddPost, ViewEditPost, ViewCommand:
			if key.Matches(msg, m.keys.Back) {
				m.back()
				return m, nil
			}
			return m.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.back()
				return m, nil
			}
			m.push(ViewHelp)
			return m, nil

		case key.Matches(msg, m.keys.Command):
			m.push(ViewCommand)
			return m, m.commandView.Focus()

		case key.Matches(msg, m.keys.Posts):
			return m, m.navigateTop(ViewPosts)

		case key.Matches(msg, m.keys.Users):
			return m, m.navigateTop(ViewUsers)

		case key.Matches(msg, m.keys.Notifications):
			return m, m.navigateTop(ViewNotifications)

		case key.Matches(msg, m.keys.Refresh):
			m.poller.Refresh()
			return m, nil

		case key.Matches(msg, m.keys.NewPost):
			return m, m.newPost()

		case key.Matches(msg, m.keys.EditPost):
			if m.currentView == ViewPosts {
				if p, ok := m.postList.SelectedPost(); ok {
					return m, m.editPost(p.ID)
				}
			}

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp {
				m.back()
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewPosts:
		m.postList, cmd = m.postList.Update(msg)
	case ViewPost:
		m.postView, cmd = m.postView.Update(msg)
	case ViewUsers:
		m.userList, cmd = m.userList.Update(msg)
	case ViewUser:
		m.userPage, cmd = m.userPage.Update(msg)
	case ViewNotifications:
		m.notifications, cmd = m.notifications.Update(msg)
	case ViewAddPost, ViewEditPost:
		m.postForm, cmd = m.postForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Postboard", ui.RenderNav(m.navItems()), m.syncStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPosts:
		return m.postList.View()
	case ViewPost:
		return m.postView.View()
	case ViewUsers:
		return m.userList.View()
	case ViewUser:
		return m.userPage.View()
	case ViewNotifications:
		return m.notifications.View()
	case ViewAddPost, ViewEditPost:
		return m.postForm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

func (m Model) navItems() []ui.NavItem {
	top := m.topView()
	return []ui.NavItem{
		{Label: "Posts", Active: top == ViewPosts},
		{Label: "Users", Active: top == ViewUsers},
		{Label: "Notifications", Active: top == ViewNotifications, Badge: m.unread},
	}
}

// topView is the navigation section the current view belongs to.
func (m Model) topView() ViewState {
	if len(m.backStack) > 0 {
		return m.backStack[0]
	}
	return m.currentView
}

// syncStatus returns a short string describing the notification sync.
func (m Model) syncStatus() string {
	if m.store.State().Notifications.Status == model.StatusLoading {
		return "refreshing..."
	}
	last, err := m.poller.LastSync()
	if err != nil {
		return "⚠ notifications unreachable"
	}
	if last.IsZero() {
		return "r refresh"
	}
	return "synced " + humanize.Time(last)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.flash != "" {
		return m.flash
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewPost:
		return "1-6 react | e edit | o author | esc back | j/k scroll"
	case ViewUser:
		return "enter open post | esc back"
	case ViewAddPost, ViewEditPost:
		return "enter submit | esc cancel"
	default:
		return "q quit | ? help | p posts | u users | n notifications | a add | r refresh"
	}
}

// refresh pushes the current store snapshot into every view.
func (m *Model) refresh() tea.Cmd {
	st := m.store.State()
	name := func(id string) string { return m.sel.UserName(st, id) }

	postsCmd := m.postList.SetPosts(m.sel.AllPosts(st), name, st.Posts.AsyncState)
	if id := m.postView.PostID(); id != "" {
		p, ok := m.sel.PostByID(st, id)
		m.postView.SetPost(id, p, ok, name(p.User))
	}

	users := m.sel.AllUsers(st)
	usersCmd := m.userList.SetUsers(users, st.Users.AsyncState)
	m.postForm.SetUsers(users)
	if id := m.userPage.UserID(); id != "" {
		u, ok := m.sel.UserByID(st, id)
		m.userPage.SetUser(id, u, ok, m.sel.PostsByUser(st, id))
	}

	m.notifications.SetNotifications(m.sel.AllNotifications(st), name, st.Notifications.AsyncState)
	m.unread = m.sel.UnreadNotificationCount(st)
	return tea.Batch(postsCmd, usersCmd)
}

// mount runs the side effects of entering view v.
func (m Model) mount(v ViewState) tea.Cmd {
	st := m.store.State()
	postsIdle := st.Posts.Status == model.StatusIdle
	usersIdle := st.Users.Status == model.StatusIdle

	var cmds []tea.Cmd
	switch v {
	case ViewPosts, ViewPost:
		if postsIdle {
			cmds = append(cmds, m.thunks.FetchPostsCmd())
		}
	case ViewUsers, ViewAddPost:
		if usersIdle {
			cmds = append(cmds, m.thunks.FetchUsersCmd())
		}
	case ViewUser:
		if postsIdle {
			cmds = append(cmds, m.thunks.FetchPostsCmd())
		}
		if usersIdle {
			cmds = append(cmds, m.thunks.FetchUsersCmd())
		}
	case ViewNotifications:
		cmds = append(cmds, m.dispatch(store.AllNotificationsRead{}))
	}
	return tea.Batch(cmds...)
}

// push opens v on top of the current view.
func (m *Model) push(v ViewState) {
	m.backStack = append(m.backStack, m.currentView)
	m.currentView = v
}

// back returns to the previous view, or stays put at the top level.
func (m *Model) back() {
	if len(m.backStack) == 0 {
		return
	}
	m.currentView = m.backStack[len(m.backStack)-1]
	m.backStack = m.backStack[:len(m.backStack)-1]
}

// navigateTop switches to a navigation section, dropping the back stack.
func (m *Model) navigateTop(v ViewState) tea.Cmd {
	m.backStack = nil
	m.currentView = v
	return m.mount(v)
}

func (m *Model) openPost(id string) tea.Cmd {
	m.postView.SetPost(id, model.Post{}, false, "")
	cmd := m.refresh()
	m.push(ViewPost)
	return tea.Batch(cmd, m.mount(ViewPost))
}

func (m *Model) openUser(id string) tea.Cmd {
	m.userPage.SetUser(id, model.User{}, false, nil)
	cmd := m.refresh()
	m.push(ViewUser)
	return tea.Batch(cmd, m.mount(ViewUser))
}

func (m *Model) newPost() tea.Cmd {
	m.push(ViewAddPost)
	// Keep a half-typed or rejected post across visits.
	if m.postForm.EditMode() || !m.postForm.Started() {
		return tea.Batch(m.postForm.StartCreate(), m.mount(ViewAddPost))
	}
	return m.mount(ViewAddPost)
}

func (m *Model) editPost(id string) tea.Cmd {
	p, err := m.sel.RequirePost(m.store.State(), id)
	if err != nil {
		glog.Warningf("[app]edit: %v", err)
		m.flash = "Post not found!"
		return nil
	}
	m.push(ViewEditPost)
	return m.postForm.StartEdit(p)
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(line string) tea.Cmd {
	name, arg := command.Split(line)
	switch name {
	case "posts":
		return m.navigateTop(ViewPosts)
	case "users":
		return m.navigateTop(ViewUsers)
	case "notifications":
		return m.navigateTop(ViewNotifications)
	case "new", "add":
		return m.newPost()
	case "refresh":
		m.poller.Refresh()
		return nil
	case "help":
		m.push(ViewHelp)
		return nil
	case "quit", "q":
		return m.quit()
	case "post":
		if arg != "" {
			return m.openPost(arg)
		}
	case "user":
		if arg != "" {
			return m.openUser(arg)
		}
	}
	m.flash = fmt.Sprintf("unknown command %q", line)
	return nil
}

// dispatch applies a off the UI goroutine; the change arrives through the
// store subscription.
func (m Model) dispatch(a store.Action) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.Dispatch(a)
		return nil
	}
}

// waitForChange returns a tea.Cmd that waits for the next store signal.
func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m Model) quit() tea.Cmd {
	glog.Info("quitting")
	m.poller.Stop()
	m.unsubscribe()
	return tea.Quit
}
