// Package arbor loads authored scene documents into node trees for
// [Ebitengine] games.
//
// A scene document describes a tree of node descriptors. Each descriptor has
// a classname (only "CCNode" is assembled), transform and visibility fields,
// a list of components and a list of child descriptors under "gameobjects".
// Documents come in two encodings that carry the same information: a JSON
// text form and a compact binary form produced by [EncodeBinary].
//
// # Quick start
//
//	reader := arbor.NewReader(
//		arbor.WithAssets(os.DirFS("assets")),
//		arbor.WithTextures(arbor.NewFSTextures(os.DirFS("assets"))),
//	)
//	defer reader.Close()
//
//	root, err := reader.LoadFile("level1.json")
//	if err != nil {
//		return err
//	}
//	scene := arbor.NewScene()
//	scene.Add(root)
//
//	hero := scene.NodeByTag(10003)
//
// Call [Scene.Update] once per frame. It refreshes world transforms and ticks
// every component implementing [Updater], such as [ComController].
//
// # Components
//
// Components are created by name through a [Factory]. [NewReader] registers
// the built-in types ([ComAttribute], [ComRender], [ComAudio],
// [ComController]); add your own with [WithComponent]:
//
//	reader := arbor.NewReader(arbor.WithComponent(arbor.TypeInfo{
//		Name: "HealthBar",
//		New:  func() arbor.Component { return &HealthBar{} },
//	}))
//
// A component whose type is unknown, or whose Deserialize reports false, is
// skipped; loading never fails because of a single component.
//
// # Render components
//
// Types registered with [CapRenderer] that implement [Renderer] may carry a
// pre-built node, for example a sprite. In [AttachRenderNode] mode that node
// becomes the descriptor's node for every non-root descriptor. In
// [AttachEmptyNode] mode (the default) a fresh container is always created and
// the renderer is attached to it like any other component.
//
// # Listening to loads
//
// A [Listener] sees every component resolution, including the failed ones:
//
//	reader.SetListener(func(c arbor.Component, p *arbor.Payload) {
//		if c == nil {
//			log.Printf("skipped %s #%d", p.ClassName, p.Index)
//		}
//	})
//
// The ecs subpackage turns these calls into [Donburi] events.
//
// # Debug mode
//
// [Scene.SetDebugMode] turns on panics for operations on disposed nodes and
// logs warnings for very deep trees, very wide nodes and duplicate component
// classes on a node.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package arbor
