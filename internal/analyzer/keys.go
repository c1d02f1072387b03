package analyzer

import "github.com/mcncl/swiftyper/internal/models"

// AllKeys returns every distinct original key below root, in pre-order
// depth-first document order. The first occurrence of a key wins. The
// root's own key is not included; an empty JSON key deeper in the tree is.
func AllKeys(root *models.Property) []string {
	if root == nil {
		return nil
	}
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	var walk func(p *models.Property)
	walk = func(p *models.Property) {
		if _, ok := seen[p.Key]; !ok {
			seen[p.Key] = struct{}{}
			keys = append(keys, p.Key)
		}
		for _, child := range p.Children {
			walk(child)
		}
	}
	for _, child := range root.Children {
		walk(child)
	}

	return keys
}
