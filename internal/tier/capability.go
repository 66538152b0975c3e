package tier

// Capability describes what a generated unit does at runtime. Visual tiers
// produce render output, containers own mutable state, hooks and presenters
// execute pure transforms.
type Capability string

const (
	CapRender    Capability = "render"
	CapStateful  Capability = "stateful"
	CapTransform Capability = "transform"
)

// Capability reports the capability of every visual tier.
func (d Definition) Capability() Capability {
	return CapRender
}
