// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
)

// ExpiredMarker is the token that flags a padrón row as having a lapsed
// certification. Matching is case-insensitive substring containment.
const ExpiredMarker = "VENCIDA"

// PadronEntry is one row of a freshly imported padrón snapshot. Entries are
// ephemeral: they only exist during an import cycle and are superseded by
// the next upload.
type PadronEntry struct {
	SupplyID    string // Nº SUMINISTRO, unique within one snapshot
	Name        string // NOMBRE ELECTRODEPENDIENTE
	Contact     string // raw free-text contact cell, may hold several numbers
	Phone       string // canonical WhatsApp number derived from Contact, "" if none
	Vigencia    string // certification status text as imported
	Distributor string
	Department  string
}

// Expired reports whether the entry's vigencia text marks it as lapsed and
// therefore eligible for notification.
func (e PadronEntry) Expired() bool {
	return IsExpired(e.Vigencia)
}

// IsExpired classifies a vigencia status text. Case and surrounding
// whitespace are ignored; any occurrence of the expired marker counts.
func IsExpired(status string) bool {
	return strings.Contains(strings.ToUpper(strings.TrimSpace(status)), ExpiredMarker)
}
