package tui

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	return overlayBoxStyle.Render(
		errorStyle.Render("Ошибка") + "\n\n" + m.message + "\n\n" + helpStyle.Render("enter / esc закрыть"),
	)
}
