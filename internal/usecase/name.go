package usecase

import (
	"strings"
)

type ParsedName struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// ParseFullName quebra o nome completo em primeiro/meio/último.
// Primeiro token -> first; último (se houver 2+) -> last; o miolo vira middle.
// Entrada vazia produz três strings vazias. Sem locale, ASCII mesmo.
func ParseFullName(fullName string) ParsedName {
	var parsed ParsedName

	fullName = strings.Join(strings.Fields(fullName), " ")
	if fullName == "" {
		return parsed
	}

	parts := strings.Split(fullName, " ")
	parsed.FirstName = parts[0]

	if len(parts) > 2 {
		parsed.MiddleName = strings.Join(parts[1:len(parts)-1], " ")
	}
	if len(parts) > 1 {
		parsed.LastName = parts[len(parts)-1]
	}

	return parsed
}
