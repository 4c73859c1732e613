package profile

import (
	"math"
	"time"
)

const (
	DefaultName  = "Max"
	DefaultBreed = "Golden Retriever"

	daysPerYear = 365.25
)

// Profile es el snapshot de la identidad de la mascota.
// La edad no se guarda: se deriva de Birthday cada vez que se lee.
type Profile struct {
	Name     string
	Breed    string
	Birthday time.Time

	// Version sube en cada commit exitoso.
	Version   int64
	UpdatedAt time.Time
}

// Default devuelve el perfil de arranque (Max, Golden Retriever, 29/07/2017 12:00 local).
func Default() Profile {
	return Profile{
		Name:     DefaultName,
		Breed:    DefaultBreed,
		Birthday: time.Date(2017, time.July, 29, 12, 0, 0, 0, time.Local),
	}
}

// AgeYears devuelve la edad en años con un decimal.
func (p Profile) AgeYears(asOf time.Time) float64 {
	return AgeYears(p.Birthday, asOf)
}

// AgeYears calcula round(días/365.25, 1 decimal), redondeando half away from zero.
// Un cumpleaños en el futuro da 0.0.
func AgeYears(birthday, asOf time.Time) float64 {
	if birthday.After(asOf) {
		return 0.0
	}
	days := int64(asOf.Sub(birthday) / (24 * time.Hour))
	years := float64(days) / daysPerYear
	return math.Round(years*10) / 10
}

// Draft es una copia editable. No toca el store hasta Commit.
type Draft struct {
	Name     string
	Breed    string
	Birthday time.Time
}
