package command

// ArgSpec declares one positional argument a command expects, mirroring the
// generic (name, position, required, default, capture, map) contract used
// throughout the argument-parsing layer: capture binds every remaining
// element from Position onward as a [][]byte instead of a single []byte.
type ArgSpec struct {
	Name     string
	Position int
	Required bool
	Default  []byte
	Capture  bool
	MapFn    func([]byte) (interface{}, error)
}

// ParsedArgs is the bag of values an ArgParser produces, keyed by ArgSpec.Name.
type ParsedArgs map[string]interface{}

// Bytes returns the value at name as a single []byte, or nil.
func (p ParsedArgs) Bytes(name string) []byte {
	v, _ := p[name].([]byte)
	return v
}

// Captured returns the value at name as a [][]byte, or nil.
func (p ParsedArgs) Captured(name string) [][]byte {
	v, _ := p[name].([][]byte)
	return v
}

// Present reports whether name is bound in p. A spec's default is stored
// under the same name, so Present does not tell a real argument apart from
// a default.
func (p ParsedArgs) Present(name string) bool {
	_, ok := p[name]
	return ok
}

// ArgParser runs a fixed list of ArgSpecs over a command's argument frames.
type ArgParser struct {
	command string
	specs   []ArgSpec
}

// NewArgParser creates a parser for the named command, used only to build
// MissingArgumentError messages.
func NewArgParser(command string) *ArgParser {
	return &ArgParser{command: command}
}

// Add appends a declared argument and returns the parser for chaining.
func (p *ArgParser) Add(spec ArgSpec) *ArgParser {
	p.specs = append(p.specs, spec)
	return p
}

// Parse walks args (the command's arguments, not including the command name
// itself) against the declared specs.
func (p *ArgParser) Parse(args [][]byte) (ParsedArgs, error) {
	out := make(ParsedArgs, len(p.specs))
	for _, spec := range p.specs {
		if spec.Position >= len(args) {
			if spec.Required {
				return nil, &MissingArgumentError{Command: p.command, Name: spec.Name, Position: spec.Position}
			}
			if spec.Default != nil {
				out[spec.Name] = spec.Default
			}
			continue
		}

		if spec.Capture {
			out[spec.Name] = args[spec.Position:]
			continue
		}

		raw := args[spec.Position]
		if spec.MapFn == nil {
			out[spec.Name] = raw
			continue
		}
		mapped, err := spec.MapFn(raw)
		if err != nil {
			return nil, err
		}
		out[spec.Name] = mapped
	}
	return out, nil
}
