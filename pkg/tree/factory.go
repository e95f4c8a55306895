package tree

// Factory creates detached nodes for the hosting environment.
type Factory interface {
	NewElement(name string) *Node
	NewText(text string) *Node
	NewFragment() *Node
}

type memory struct{}

func (memory) NewElement(name string) *Node { return NewElement(name) }
func (memory) NewText(text string) *Node    { return NewText(text) }
func (memory) NewFragment() *Node           { return NewFragment() }

// Memory is the default in-memory Factory.
var Memory Factory = memory{}
