package tui

type confirmModel struct {
	message string
	local   bool
}

func (m confirmModel) View() string {
	content := "Удалить \"" + m.message + "\"?\n\n"
	if m.local {
		content += "Запись ещё не отправлена на сервер и будет удалена без следа.\n\n"
	}
	content += "y да    n нет"
	return overlayBoxStyle.Render(content)
}
