package parser

// classParser tracks the class block currently open, if any.
type classParser struct {
	reg     *Registry
	current string
}

func (p *classParser) inBlock() bool { return p.current != "" }

// open starts a block for id. An open block is replaced, not nested.
func (p *classParser) open(id string) {
	p.current = id
	p.reg.GetOrCreate(id)
}

func (p *classParser) close() { p.current = "" }

// member appends a line to the open class.
func (p *classParser) member(text string) {
	p.reg.GetOrCreate(p.current).AddMember(text)
}

// inline appends member text to id outside any block.
func (p *classParser) inline(id, text string) {
	p.reg.GetOrCreate(id).AddMember(text)
}
