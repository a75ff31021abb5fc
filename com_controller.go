package arbor

// ClassComController is the registered name of ComController.
const ClassComController = "CCComController"

// ComController drives per-frame behaviour of its node: tween groups started
// with Run and an optional OnUpdate callback. Scene.Update ticks it.
type ComController struct {
	ComponentBase
	Enabled  bool
	OnUpdate func(c *ComController, dt float32)

	tweens []*TweenGroup
}

// NewComController returns an enabled controller.
func NewComController() *ComController {
	c := &ComController{Enabled: true}
	c.className = ClassComController
	return c
}

// Deserialize reads the controller name and enabled flag.
func (c *ComController) Deserialize(p *Payload) bool {
	c.SetName(GetString(p.Element, keyName, ""))
	c.Enabled = GetBool(p.Element, "enabled", true)
	return true
}

// Run adds g to the groups advanced on each Update.
func (c *ComController) Run(g *TweenGroup) {
	c.tweens = append(c.tweens, g)
}

// Running returns the number of unfinished tween groups.
func (c *ComController) Running() int {
	return len(c.tweens)
}

// Update advances the tween groups, drops finished ones and calls OnUpdate.
func (c *ComController) Update(dt float32) {
	if !c.Enabled {
		return
	}
	live := c.tweens[:0]
	for _, g := range c.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(c.tweens); i++ {
		c.tweens[i] = nil
	}
	c.tweens = live
	if c.OnUpdate != nil {
		c.OnUpdate(c, dt)
	}
}

// Release drops all tween groups.
func (c *ComController) Release() {
	c.tweens = nil
	c.OnUpdate = nil
}
