package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
)

// Placeholder stands in for topics without a simulation.
type Placeholder struct {
	params *param.Store
}

func NewPlaceholder() *Placeholder {
	return &Placeholder{params: param.NewStore()}
}

func (p *Placeholder) Kind() dynamo.Kind            { return dynamo.KindPlaceholder }
func (p *Placeholder) Params() *param.Store         { return p.params }
func (p *Placeholder) TickInterval() time.Duration  { return time.Second }
func (p *Placeholder) Step(tick int) dynamo.Outputs { return dynamo.Outputs{} }
func (p *Placeholder) Reset()                       {}

func (p *Placeholder) Labels() map[string]string {
	return map[string]string{"message": "no simulation available for this topic"}
}
