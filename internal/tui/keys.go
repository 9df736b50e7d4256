package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	newItem    key.Binding
	sync       key.Binding
	reload     key.Binding
	filter     key.Binding
	edit       key.Binding
	delete     key.Binding
	copy       key.Binding
	parked     key.Binding
	requeue    key.Binding
	addComp    key.Binding
	removeComp key.Binding
	buildInfo  key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q")),
	newItem:    key.NewBinding(key.WithKeys("n")),
	sync:       key.NewBinding(key.WithKeys("s")),
	reload:     key.NewBinding(key.WithKeys("r")),
	filter:     key.NewBinding(key.WithKeys("f")),
	edit:       key.NewBinding(key.WithKeys("e")),
	delete:     key.NewBinding(key.WithKeys("d")),
	copy:       key.NewBinding(key.WithKeys("y")),
	parked:     key.NewBinding(key.WithKeys("p")),
	requeue:    key.NewBinding(key.WithKeys("r")),
	addComp:    key.NewBinding(key.WithKeys("a")),
	removeComp: key.NewBinding(key.WithKeys("x")),
	buildInfo:  key.NewBinding(key.WithKeys("v")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
}
