package conf

import (
	"context"
	"testing"
	"time"
)

type testConf struct {
	Text    Value[string]
	Enabled Value[bool]
	Size    Value[int64]
	Timeout Value[time.Duration]
	Body    Bytes
}

func (c *testConf) Merge(p *testConf) {
	if p == nil {
		p = &testConf{}
	}
	c.Text.Merge(&p.Text, "")
	c.Enabled.Merge(&p.Enabled, false)
	c.Size.Merge(&p.Size, 4096)
	c.Timeout.Merge(&p.Timeout, 60*time.Second)
	c.Body.Merge(&p.Body, []byte("default"))
}

var testModule = Define[testConf]("test", []Command[testConf]{
	{Name: "test_text", Scopes: AnyConf, Args: Take1, Set: StrSlot(func(c *testConf) *Value[string] { return &c.Text })},
	{Name: "test_enabled", Scopes: AnyConf, Args: Take1, Set: FlagSlot(func(c *testConf) *Value[bool] { return &c.Enabled })},
	{Name: "test_size", Scopes: MainConf | ServerConf, Args: Take1, Set: SizeSlot(func(c *testConf) *Value[int64] { return &c.Size })},
	{Name: "test_timeout", Scopes: AnyConf, Args: Take1, Set: MsecSlot(func(c *testConf) *Value[time.Duration] { return &c.Timeout })},
	{Name: "test_body", Scopes: AnyConf, Args: Take1, Set: BytesSlot(func(c *testConf) *Bytes { return &c.Body })},
}, nil)

// testTree is main → one server → two locations.
func testTree() (tree *Tree, srv, loc1, loc2 *Block) {
	tree = NewTree()
	srv = tree.Main().AddServer("example.com")
	loc1 = srv.AddLocation("/a")
	loc2 = srv.AddLocation("/b")
	return tree, srv, loc1, loc2
}

func newTestCycle(t *testing.T, tree *Tree, mods ...Module) *Cycle {
	t.Helper()
	if len(mods) == 0 {
		mods = []Module{testModule}
	}
	reg, err := NewRegistry(mods...)
	if err != nil {
		t.Fatalf("NewRegistry error = %v", err)
	}
	cy, err := NewCycle(WithRegistry(context.Background(), reg), tree)
	if err != nil {
		t.Fatalf("NewCycle error = %v", err)
	}
	t.Cleanup(cy.Release)
	if err := cy.Create(); err != nil {
		t.Fatalf("Create error = %v", err)
	}
	return cy
}

// apply parses tokens into the temp arena like a host parser would,
// then recycles it.
func apply(t *testing.T, cy *Cycle, b *Block, name string, args ...string) error {
	t.Helper()
	toks := make([][]byte, len(args))
	for i, a := range args {
		toks[i] = cy.Temp().Copy([]byte(a))
	}
	err := cy.Apply(b, name, toks...)
	cy.Temp().Reset()
	return err
}

func mustApply(t *testing.T, cy *Cycle, b *Block, name string, args ...string) {
	t.Helper()
	if err := apply(t, cy, b, name, args...); err != nil {
		t.Fatalf("Apply(%s) error = %v", name, err)
	}
}
