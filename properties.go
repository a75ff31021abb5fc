package arbor

// Node descriptor property keys.
const (
	keyX         = "x"
	keyY         = "y"
	keyVisible   = "visible"
	keyObjectTag = "objecttag"
	keyZOrder    = "zorder"
	keyScaleX    = "scalex"
	keyScaleY    = "scaley"
	keyRotation  = "rotation"
)

// applyProperties copies the standard transform, visibility and tag fields
// of a node descriptor onto node. Missing or malformed fields fall back to
// the node defaults, so applying an empty descriptor leaves a fresh node
// unchanged.
func applyProperties(el Element, node *Node) {
	if name := GetString(el, keyName, ""); name != "" {
		node.Name = name
	}
	node.SetPosition(GetFloat(el, keyX, 0), GetFloat(el, keyY, 0))
	node.SetVisible(GetBool(el, keyVisible, true))
	node.SetTag(GetInt(el, keyObjectTag, TagInvalid))
	node.SetZOrder(GetInt(el, keyZOrder, 0))
	node.SetScale(GetFloat(el, keyScaleX, 1), GetFloat(el, keyScaleY, 1))
	node.SetRotation(GetFloat(el, keyRotation, 0))
}
