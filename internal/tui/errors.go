// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-registry-keeper/internal/adapter"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
)

var (
	ErrNoRegistryService = errors.New("registry service is not configured")

	errNameRequired = errors.New("Название обязательно")
	errInvalidYear  = errors.New("Год должен быть числом")
	errNoComponent  = errors.New("Имя компонента обязательно")
)

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case adapter.IsUnreachable(err):
		return "Отсутствует сеть или Сервер недоступен"
	case errors.Is(err, service.ErrRecordNotSynced):
		return "Запись ещё не отправлена на сервер, компоненты недоступны"
	case errors.Is(err, service.ErrServiceClosed):
		return "Сервис остановлен"
	case errors.Is(err, service.ErrLocalStore):
		return "Ошибка локального хранилища: " + err.Error()
	case errors.Is(err, store.ErrRecordNotFound), errors.Is(err, adapter.ErrNotFound):
		return "Запись не найдена"
	case errors.Is(err, adapter.ErrConflict):
		return "Конфликт на сервере: " + err.Error()
	case adapter.IsRejected(err):
		return "Сервер отклонил запрос: " + err.Error()
	}

	return err.Error()
}
