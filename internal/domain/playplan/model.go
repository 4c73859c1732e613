package playplan

// DefaultLabels es el plan de entrenamiento con el que arranca la app.
var DefaultLabels = []string{"Sit", "Stay", "Down", "Come", "Heel", "Leave It"}

type Task struct {
	ID        string
	Label     string
	Completed bool
	Position  int
}

// Progress es completadas/total; Ratio = 0 si no hay tareas.
type Progress struct {
	Completed int
	Total     int
	Ratio     float64
}

func ProgressOf(tasks []Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Ratio = float64(p.Completed) / float64(p.Total)
	}
	return p
}
