package community

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Challenge es un reto de la comunidad con meta acumulada y fecha de cierre.
type Challenge struct {
	ID           string
	Title        string
	Subtitle     string
	Current      float64
	Total        float64
	Unit         string
	Participants int
	Joined       bool
	EndsAt       time.Time
}

// DaysRemaining redondea hacia arriba; un reto vencido devuelve 0.
func (c Challenge) DaysRemaining(now time.Time) int {
	left := c.EndsAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// Progress va de 0 a 1.
func (c Challenge) Progress() float64 {
	if c.Total <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, c.Current/c.Total))
}

// ToggleJoin suma o resta al participante local, sin bajar de cero.
func (c *Challenge) ToggleJoin() {
	c.Joined = !c.Joined
	if c.Joined {
		c.Participants++
		return
	}
	c.Participants = max(0, c.Participants-1)
}

type Trophy string

const (
	TrophyNone   Trophy = ""
	TrophyGold   Trophy = "gold"
	TrophySilver Trophy = "silver"
	TrophyBronze Trophy = "bronze"
)

// Standing es la distancia acumulada de una mascota en el período.
type Standing struct {
	PetName   string
	Distance  float64
	Unit      string
	ImageName string
}

type LeaderboardEntry struct {
	Standing
	Rank   int
	Trophy Trophy
}

// Rank ordena por distancia descendente. Empates comparten puesto (1, 2, 2, 4)
// y el trofeo sale del puesto, no de la posición.
func Rank(standings []Standing) []LeaderboardEntry {
	sorted := make([]Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Distance != sorted[j].Distance {
			return sorted[i].Distance > sorted[j].Distance
		}
		return strings.ToLower(sorted[i].PetName) < strings.ToLower(sorted[j].PetName)
	})

	out := make([]LeaderboardEntry, 0, len(sorted))
	for i, st := range sorted {
		rank := i + 1
		if i > 0 && st.Distance == sorted[i-1].Distance {
			rank = out[i-1].Rank
		}
		out = append(out, LeaderboardEntry{Standing: st, Rank: rank, Trophy: trophyFor(rank)})
	}
	return out
}

func trophyFor(rank int) Trophy {
	switch rank {
	case 1:
		return TrophyGold
	case 2:
		return TrophySilver
	case 3:
		return TrophyBronze
	default:
		return TrophyNone
	}
}
