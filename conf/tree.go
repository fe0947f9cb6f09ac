package conf

// ID identifies one scope instance (block) within a Tree.
type ID uint64

// Block is one scope instance: the main block, a server, or a location.
type Block struct {
	tree     *Tree
	id       ID
	scope    Scope
	name     string
	parent   *Block
	children []*Block
}

// Tree is the scope hierarchy produced by the host's parser: one Main block,
// servers under it, locations under each server.
type Tree struct {
	main *Block
	all  []*Block
}

// NewTree returns a tree holding only the Main block.
func NewTree() *Tree {
	t := &Tree{}
	t.main = t.add(nil, Main, "")
	return t
}

// Main returns the root block.
func (t *Tree) Main() *Block {
	return t.main
}

// Len returns the number of blocks.
func (t *Tree) Len() int {
	return len(t.all)
}

// Walk calls fn for every block, parents before children.
func (t *Tree) Walk(fn func(b *Block)) {
	var walk func(b *Block)
	walk = func(b *Block) {
		fn(b)
		for _, c := range b.children {
			walk(c)
		}
	}
	walk(t.main)
}

func (t *Tree) add(parent *Block, s Scope, name string) *Block {
	b := &Block{tree: t, id: ID(len(t.all) + 1), scope: s, name: name, parent: parent}
	if parent != nil {
		parent.children = append(parent.children, b)
	}
	t.all = append(t.all, b)
	return b
}

// AddServer adds a server block. It panics unless b is the Main block.
func (b *Block) AddServer(name string) *Block {
	if b.scope != Main {
		panic("conf: server block outside main")
	}
	return b.tree.add(b, Server, name)
}

// AddLocation adds a location block. It panics unless b is a server block.
func (b *Block) AddLocation(path string) *Block {
	if b.scope != Server {
		panic("conf: location block outside server")
	}
	return b.tree.add(b, Location, path)
}

// ID returns the block's instance identifier.
func (b *Block) ID() ID { return b.id }

// Scope returns the block's scope.
func (b *Block) Scope() Scope { return b.scope }

// Name returns the server name or location path. Main has no name.
func (b *Block) Name() string { return b.name }

// Parent returns the enclosing block, or nil for Main.
func (b *Block) Parent() *Block { return b.parent }

// Children returns the blocks nested directly in b.
func (b *Block) Children() []*Block { return b.children }

// Child returns the direct child with the given name, or nil.
func (b *Block) Child(name string) *Block {
	for _, c := range b.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Tree returns the tree b belongs to.
func (b *Block) Tree() *Tree { return b.tree }
