package sim

import (
	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
)

// Recorder appends the committed state of every body to its series. All
// bodies are written in one call, so index k means "after step k" for every
// body at once.
type Recorder struct {
	history *dynamo.History
}

func NewRecorder(h *dynamo.History) *Recorder {
	return &Recorder{history: h}
}

func (r *Recorder) Record(k int, bodies []*dynamo.Body) error {
	for _, b := range bodies {
		if err := r.history.Set(k, b.Name(), b.Position, b.Temperature); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) History() *dynamo.History { return r.history }
