package community

import "time"

// Post es una actividad compartida en el feed.
// Distance/Duration/Pace vienen formateados por el cliente ("2.4 mi", "45min").
type Post struct {
	ID            string
	PetName       string
	ActivityTitle string
	Distance      string
	Duration      string
	Pace          string
	Location      string
	ImageName     string

	Kudos    int
	Comments int
	Liked    bool

	CreatedAt time.Time
}

// ToggleKudos: like suma uno, unlike resta uno sin bajar de cero.
func (p *Post) ToggleKudos() {
	p.Liked = !p.Liked
	if p.Liked {
		p.Kudos++
		return
	}
	p.Kudos = max(0, p.Kudos-1)
}
