package model

import (
	"strconv"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// School is the closed set of schools a player can belong to
type School string

// Gender is the closed set of genders a player can declare
type Gender string

// School values
const (
	SchoolAguachica   School = "Aguachica"
	SchoolLaArgentina School = "La Argentina"
	SchoolAractaca    School = "Aractaca"
)

// Gender values
const (
	GenderMasculino Gender = "Masculino"
	GenderFemenino  Gender = "Femenino"
)

// Level bounds for player progression
const (
	MinLevel = 1
	MaxLevel = 5
)

// ParseSchool validates a raw school value at the boundary
func ParseSchool(raw string) (School, error) {
	switch School(raw) {
	case SchoolAguachica, SchoolLaArgentina, SchoolAractaca:
		return School(raw), nil
	}
	return "", ErrInvalidSchool
}

// ParseGender validates a raw gender value at the boundary
func ParseGender(raw string) (Gender, error) {
	switch Gender(raw) {
	case GenderMasculino, GenderFemenino:
		return Gender(raw), nil
	}
	return "", ErrInvalidGender
}

// Player represents a registered game account.
// Document is the login identity and is immutable after registration.
// Money holds the stored decimal-text balance; the wire format is a string
// and MoneyValue is the single place it is parsed.
type Player struct {
	ID        PlayerID
	Document  string
	Name      string
	School    School
	Gender    Gender
	Money     string
	Level     int
	CreatedAt time.Time
}

// MoneyValue parses the stored balance. A balance that does not parse as a
// non-negative integer is a data integrity fault, never coerced to zero.
func (p *Player) MoneyValue() (int64, error) {
	value, err := strconv.ParseInt(p.Money, 10, 64)
	if err != nil || value < 0 {
		return 0, ErrCorruptMoney
	}
	return value, nil
}

// SetMoney stores an integer balance back in its decimal-text form
func (p *Player) SetMoney(value int64) {
	p.Money = strconv.FormatInt(value, 10)
}
