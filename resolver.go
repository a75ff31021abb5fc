package arbor

// resolved collects what the components of one node descriptor turned into.
type resolved struct {
	components []Component
	renderer   Renderer
}

// resolveComponent creates, deserializes and classifies the component
// described by el. Unknown types and failed deserialization contribute
// nothing; the listener sees every attempt, with a nil component for those.
func (r *Reader) resolveComponent(el Element, index int, out *resolved) {
	className := GetString(el, keyClassName, "")
	com, caps := r.factory.Create(className)

	p := &Payload{Element: el, ClassName: className, Index: index, reader: r}
	if com == nil {
		r.logger.Debug().Str("classname", className).Int("index", index).Msg("unknown component type, skipped")
	} else if !com.Deserialize(p) {
		r.logger.Debug().Str("classname", className).Int("index", index).Msg("component deserialize failed, released")
		releaseComponent(com)
		com = nil
	} else if rc, ok := com.(Renderer); ok && caps.Has(CapRenderer) {
		if out.renderer != nil {
			r.logger.Debug().Str("classname", className).Msg("renderer superseded by a later one")
			releaseRenderer(out.renderer)
		}
		out.renderer = rc
	} else {
		out.components = append(out.components, com)
	}

	if r.listener != nil {
		r.listener(com, p)
	}
	p.clear()
}

// releaseRenderer drops a renderer that will never be attached, along with
// any node it still carries.
func releaseRenderer(rc Renderer) {
	if n := rc.TakeNode(); n != nil {
		n.Dispose()
	}
	releaseComponent(rc)
}
