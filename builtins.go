package arbor

// RegisterBuiltins adds the attribute, render, audio and controller component
// types to f. Types f already knows are left alone.
func RegisterBuiltins(f *Factory) {
	register := func(info TypeInfo) {
		if _, ok := f.Lookup(info.Name); !ok {
			f.Register(info)
		}
	}
	alias := func(alias, target string) {
		if _, ok := f.Lookup(alias); !ok {
			f.RegisterAlias(alias, target)
		}
	}

	register(TypeInfo{
		Name: ClassComAttribute,
		New:  func() Component { return NewComAttribute() },
	})
	register(TypeInfo{
		Name: ClassComRender,
		New:  func() Component { return NewComRender(nil) },
		Caps: CapRenderer,
	})
	for _, name := range []string{ClassSprite, ClassTMXTiledMap, ClassParticleSystem, ClassArmature, ClassGUIComponent} {
		alias(name, ClassComRender)
	}
	register(TypeInfo{
		Name: ClassComAudio,
		New:  func() Component { return NewComAudio() },
	})
	alias(ClassBackgroundAudio, ClassComAudio)
	register(TypeInfo{
		Name: ClassComController,
		New:  func() Component { return NewComController() },
		Caps: CapUpdater,
	})
}
