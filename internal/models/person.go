// Package models содержит доменные сущности celebrations-сервиса.
package models

import "strings"

// Person — человек из справочника (PersonDirectory).
// Важно:
//   - ID — стабильный roster-идентификатор (UUID строкой);
//   - TeamID — команда, по которой справочник вычисляет отношение «моя команда»;
//     наружу не отдаётся, в проводе вместо него флаг isInMyTeam;
//   - контекстные флаги (isInMyTeam/isCurrentUser) вычисляются на месте вызова
//     и в доменной модели не хранятся.
type Person struct {
	ID        string `bson:"id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
	AvatarURL string `bson:"avatar_url"`
	JobTitle  string `bson:"job_title"`
	TeamID    string `bson:"team_id"`
}

// FullName возвращает «Имя Фамилия» без лишних пробелов.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Caller — идентичность вызывающего, явно передаваемая в каждую операцию.
// Источник — транспорт (заголовок X-Roster-Person-Id) или конфигурация по умолчанию.
type Caller struct {
	PersonID string
}

// Anonymous сообщает, что транспорт не смог определить вызывающего.
func (c Caller) Anonymous() bool {
	return strings.TrimSpace(c.PersonID) == ""
}

// Is сообщает, совпадает ли вызывающий с человеком id.
func (c Caller) Is(id string) bool {
	return !c.Anonymous() && c.PersonID == id
}

// NormalizeEmail — единая нормализация адреса: TrimSpace + нижний регистр.
// Используется как ключ идентичности приглашённых и для поиска по e-mail.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
