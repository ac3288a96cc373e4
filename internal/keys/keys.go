package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Screens
	Posts         key.Binding
	Users         key.Binding
	Notifications key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Post actions
	NewPost   key.Binding
	EditPost  key.Binding
	ViewUser  key.Binding
	Reactions []key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Posts: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "posts"),
		),
		Users: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "users"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh notifications"),
		),
		NewPost: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add post"),
		),
		EditPost: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit post"),
		),
		ViewUser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open author"),
		),
		Reactions: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "👍")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "🎉")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "❤️")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "🚀")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "👀")),
			key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "🐰")),
		},
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Command,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Posts, k.Users, k.Notifications, k.Command, k.Help, k.Refresh},
		{k.NewPost, k.EditPost, k.ViewUser},
		k.Reactions,
	}
}
