package pick

import (
	"github.com/seqsense/pcdpicker/scene"
)

// Candidates returns the nodes of root which can be picked, parents first.
// Invisible subtrees, scene nodes and non-selectable nodes are skipped.
// Children of a non-selectable node are still enumerated.
func Candidates(root *scene.Node) []*scene.Node {
	if root == nil {
		return nil
	}
	var out []*scene.Node
	root.TraverseVisible(func(n *scene.Node) {
		if n == root || n.Type == scene.TypeScene {
			return
		}
		if !n.Meta.Selectable {
			return
		}
		out = append(out, n)
	})
	return out
}
