package compono

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// nodeCmpOpts ignores the weak Parent back-link (which would otherwise
// make cmp.Diff chase a cycle back up the tree) and Source, which isn't
// part of a clone's observable identity.
var nodeCmpOpts = cmp.Options{
	cmpopts.IgnoreFields(Node{}, "Parent", "Source"),
}

func TestCloneProducesStructurallyIdenticalButUnsharedTree(t *testing.T) {
	b := NewBuild("test.html")
	orig := Parse("test.html", `<div class="a"><p>hi <b>there</b></p></div>`, b)

	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone, nodeCmpOpts); diff != "" {
		t.Errorf("Clone() produced a structurally different tree (-orig +clone):\n%s", diff)
	}

	// Mutating the clone must never reach the original: no node is shared
	// between two parents, per spec's hygiene requirement.
	clone.Children[0].Children[0].Text = "mutated"
	if orig.Children[0].Children[0].Text == "mutated" {
		t.Fatal("Clone() shared the <p> node with the original")
	}

	if clone.Parent != nil {
		t.Fatal("Clone() root must not carry a Parent link")
	}
}

func TestCloneOfSubtreeIsDetachedFromOriginalParent(t *testing.T) {
	b := NewBuild("test.html")
	doc := Parse("test.html", `<div><span>x</span></div>`, b)
	div := doc.Children[0]

	clone := div.Clone()
	if clone.Parent != nil {
		t.Fatal("a cloned subtree must start detached, ready for the caller to attach it elsewhere")
	}
	if diff := cmp.Diff(div, clone, nodeCmpOpts); diff != "" {
		t.Errorf("Clone() of a subtree differs from its source (-orig +clone):\n%s", diff)
	}
}
