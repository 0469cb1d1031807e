// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки экономики орбов
var (
	// ErrNoOrbs — недостаточно орбов для ритуала
	ErrNoOrbs = errors.New("недостаточно орбов")
	// ErrInvalidAmount — некорректное количество (ноль или отрицательное)
	ErrInvalidAmount = errors.New("количество должно быть положительным")
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
)

// Ошибки колеса наград
var (
	// ErrNoSpins — дневной лимит вращений колеса исчерпан
	ErrNoSpins = errors.New("на сегодня вращений не осталось")
	// ErrVisionSpinsOff — бонусные вращения за видения отключены в конфиге
	ErrVisionSpinsOff = errors.New("вращения за видения сейчас отключены")
)

// Ошибки видений
var (
	// ErrNoVisions — лимит видений на сегодня исчерпан
	ErrNoVisions = errors.New("лимит видений на сегодня исчерпан")
	// ErrUnknownVisionMode — неизвестный режим видения (не «орб» и не «колесо»)
	ErrUnknownVisionMode = errors.New("неизвестный режим видения")
)

// Ошибки ритуалов
var (
	// ErrBadDate — дата не распознана (ожидается ДД.ММ.ГГГГ)
	ErrBadDate = errors.New("дата не распознана, формат: ДД.ММ.ГГГГ")
)

// Ошибки админки
var (
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
