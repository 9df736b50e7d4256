// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-registry-keeper/models"
)

const appName = "RegistryKeeper"

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := field("Приложение", appName) +
		field("Версия", valueOrNA(info.BuildVersion)) +
		field("Дата сборки", valueOrNA(info.BuildDate)) +
		field("Коммит", valueOrNA(info.BuildCommit))

	return renderPage("О ПРОГРАММЕ", strings.TrimRight(body, "\n"), "esc: назад")
}

func valueOrNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "N/A"
	}
	return v
}
