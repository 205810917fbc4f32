package pipeline

import (
	"github.com/matzehuels/flowstep/pkg/layout"
	"github.com/matzehuels/flowstep/pkg/render/graphviz"
	"github.com/matzehuels/flowstep/pkg/scene"
	"github.com/matzehuels/flowstep/pkg/step"
)

// BuildScene converts an interpreted step into a renderable scene using the
// visualization type in opts. Canvas scenes carry positioned nodes and arrow
// geometry; graphviz scenes carry DOT source.
func BuildScene(s step.Step, opts Options) scene.Scene {
	if opts.IsGraphviz() {
		return graphviz.BuildScene(s, graphviz.Options{Engine: opts.Engine})
	}
	frame := layout.NewFrame(opts.Width, opts.Height)
	return scene.Build(s, frame, opts.Style)
}
